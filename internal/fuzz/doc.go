// Package fuzztests houses Go fuzz harnesses for the sbasic pipeline
// (source -> lexer -> commands -> statements -> binder). They guard against
// panics, hangs and broken structural invariants on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
