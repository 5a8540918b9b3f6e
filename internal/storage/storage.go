// Package storage содержит реализации хранилищ пользователей, истории
// предсказаний и дневника настроения. Все реализации взаимозаменяемы и
// выбираются конфигурацией при старте.
package storage

import "errors"

// Общие ошибки хранилища. Реализации обязаны возвращать именно их, чтобы
// вызывающий код мог отображать их в HTTP статусы не зная бэкенда.
var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
)
