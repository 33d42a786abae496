package portfolio

import "errors"

// ErrIndexOutOfRange is returned by list edits addressing a missing item.
var ErrIndexOutOfRange = errors.New("portfolio: index out of range")

// The helpers below never write into the slice they are given. Callers may share it.

func appendItem[S ~[]T, T any](s S, v T) S {
	out := make(S, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

func replaceAt[S ~[]T, T any](s S, i int, v T) (S, error) {
	if i < 0 || i >= len(s) {
		return s, ErrIndexOutOfRange
	}
	out := make(S, len(s))
	copy(out, s)
	out[i] = v
	return out, nil
}

func removeAt[S ~[]T, T any](s S, i int) (S, error) {
	if i < 0 || i >= len(s) {
		return s, ErrIndexOutOfRange
	}
	out := make(S, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...), nil
}
