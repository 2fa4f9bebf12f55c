package inventory

import "errors"

var ErrInsufficientStock = errors.New("stock cannot go below zero")
