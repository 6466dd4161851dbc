package models

type Stats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalProperties  int64 `json:"totalProperties"`
	TotalSearches    int64 `json:"totalSearches"`
	ActiveProperties int64 `json:"activeProperties"`
}
