package client

import "errors"

var (
	ErrNoCommand       = errors.New("no command given")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrWrongArgsNumber = errors.New("wrong number of arguments")
	ErrNotLoggedIn     = errors.New("not logged in, run login first")
)
