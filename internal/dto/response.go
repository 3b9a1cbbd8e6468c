package dto

import "time"

// ErrorBody is the error shape for 400/404/500 responses. Code and Detail
// carry the Postgres SQLSTATE and detail line when the failure came from
// the store.
type ErrorBody struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// DeleteBody - DELETE always acknowledges with {ok:true} unless the store
// itself failed.
type DeleteBody struct {
	OK bool `json:"ok"`
}

// DBCheckBody - GET /api/db-check result. Now is set on success; the error
// fields on failure.
type DBCheckBody struct {
	OK     bool       `json:"ok"`
	Now    *time.Time `json:"now,omitempty"`
	Error  string     `json:"error,omitempty"`
	Code   string     `json:"code,omitempty"`
	Detail string     `json:"detail,omitempty"`
}

func Error(message string) ErrorBody {
	return ErrorBody{Error: message}
}
