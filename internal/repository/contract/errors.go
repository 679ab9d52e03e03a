package contract

import "errors"

var ErrDuplicate = errors.New("record already exists")
