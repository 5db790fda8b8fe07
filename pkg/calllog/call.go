package calllog

import (
	"context"
	"fmt"
)

// Call — явная сборка вызова без угадывания ролей по форме аргументов:
//
//	log.Send(ctx, calllog.SeverityError, calllog.Text("save failed").WithError(err).WithFields(f))
//
// Правила сборки сообщения те же, что у Error/Debug/Info.
type Call struct {
	r roles
}

func Text(s string) Call { return Call{r: roles{text: s, hasText: true}} }

// Code — отладочный код; в сообщение попадает его строковое представление.
func Code(code int) Call { return Call{r: roles{text: fmt.Sprint(code), hasText: true}} }

func Err(err error) Call { return Call{r: roles{err: err}} }

func (c Call) WithError(err error) Call {
	c.r.err = err
	return c
}

// WithMethod — явная метка метода; пустая строка сбрасывает метку.
func (c Call) WithMethod(m string) Call {
	c.r.method, c.r.hasMethod = Method(m), m != ""
	return c
}

func (c Call) WithFields(f Fields) Call {
	if f != nil {
		c.r.fields = f
	}
	return c
}

func (c Call) roles() roles { return c.r }

// Send — отправляет собранный вызов на уровне sev.
func (n *Normalizer) Send(ctx context.Context, sev Severity, c Call) {
	n.emit(ctx, sev, owner{}, c.roles)
}
