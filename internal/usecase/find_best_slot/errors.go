package find_best_slot

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("find_best_slot: internal error")
