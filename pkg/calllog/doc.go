// Пакет calllog — фасад логирования «из любой точки»: вызывающий код передаёт
// короткий список аргументов произвольной формы (текст, ошибка, метка метода,
// карта с отладочными данными, код), а фасад определяет роль каждого аргумента,
// выводит имя вызывающего метода, собирает одну строку вида
//
//	<Class>.<method>: <text>. {key: value}
//
// и передаёт её вместе с ошибкой во внешний Sink на одном из трёх уровней.
//
// Примеры:
//
//	calllog.Debug(ctx, "Отладка")
//	calllog.Debug(ctx, "Отладка", calllog.Method("load"))
//	calllog.Debug(ctx, "Отладка", calllog.Method("load"), calllog.Fields{"obj_id": id})
//	calllog.Error(ctx, err)
//	calllog.Error(ctx, "не удалось сохранить", err)
//	calllog.Error(ctx, err, calllog.Fields{"obj_id": id})
//
// Фасад никогда не паникует и не возвращает ошибок: его вызывают из
// обработчиков ошибок, и он не должен усугублять исходный сбой.
package calllog
