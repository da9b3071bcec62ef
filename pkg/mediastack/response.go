package mediastack

import "github.com/Adda-Baaj/khobor/internal/domain"

// Pagination mirrors the upstream pagination block.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
	Total  int `json:"total"`
}

// Response is the upstream success payload. The proxy never decodes it; the UI does.
type Response struct {
	Pagination Pagination       `json:"pagination"`
	Data       []domain.Article `json:"data"`
}

// ErrorBody is the shape upstream uses for rejected calls.
type ErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
