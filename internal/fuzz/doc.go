// Package fuzztests houses Go fuzz harnesses that exercise the front end
// (source -> lexer -> parser). Its goal is to guard against panics, hangs
// and broken span invariants on arbitrary inputs.
//
// Назначение: прогонять байты через лексер и парсер и проверять инварианты
// из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
