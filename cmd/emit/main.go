// emit — отправляет одну запись через фасад calllog в настроенные sink'и
// (zap и, при CALLLOG_KAFKA_SHIP=true, топик журнала).
//
//	emit -s err -t "Starting" -m load -f id=7 -e "db closed"
package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/Gunvolt24/calllog/config"
	"github.com/Gunvolt24/calllog/internal/app"
	"github.com/Gunvolt24/calllog/pkg/calllog"
	"github.com/Gunvolt24/calllog/pkg/logger"
	"github.com/Gunvolt24/calllog/pkg/metrics"
)

type emitCmd struct {
	Severity string            `short:"s" default:"info" enum:"error,err,debug,dbg,info,inf" help:"Уровень записи."`
	Text     string            `short:"t" help:"Текст сообщения."`
	Method   string            `short:"m" help:"Явное имя метода в метке."`
	Error    string            `short:"e" help:"Текст прикреплённой ошибки."`
	Field    map[string]string `short:"f" help:"Поле key=value (можно повторять)."`
}

// call — вызов фасада из флагов; числа и bool в полях приводятся к типам.
func (c *emitCmd) call() calllog.Call {
	call := calllog.Text(c.Text)
	if c.Method != "" {
		call = call.WithMethod(c.Method)
	}
	if len(c.Field) > 0 {
		fields := make(calllog.Fields, len(c.Field))
		for k, v := range c.Field {
			fields[k] = typed(v)
		}
		call = call.WithFields(fields)
	}
	if c.Error != "" {
		call = call.WithError(errors.New(c.Error))
	}
	return call
}

func typed(v string) any {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}

func (c *emitCmd) Run() error {
	sev, ok := calllog.ParseSeverity(c.Severity)
	if !ok {
		return fmt.Errorf("unknown severity %q", c.Severity)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logg, cleanup, err := logger.NewZapLoggerWithOptions(logger.Options{
		IsProd:  cfg.Logger.IsProd,
		Level:   cfg.Logger.Level,
		Service: cfg.Logger.Service,
	})
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()
	metrics.MustRegister()

	sinks := []calllog.Sink{logg}
	if shipper := app.NewShipper(&cfg, logg); shipper != nil {
		defer func() { _ = shipper.Close() }()
		sinks = append(sinks, shipper)
	}

	app.NewFacade(cfg.Caller, sinks...).Send(context.Background(), sev, c.call())
	return nil
}

func main() {
	_ = godotenv.Load(".env.local")

	var cmd emitCmd
	kctx := kong.Parse(&cmd,
		kong.Name("emit"),
		kong.Description("Отправить одну запись журнала через фасад calllog."),
	)
	kctx.FatalIfErrorf(kctx.Run())
}
