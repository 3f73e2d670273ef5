// File: internal/dto/ad_response.go
package dto

import "notice-board/internal/model"

// AdSummary 清單用的精簡表示，不含作者資料
// swagger:model dto.AdSummary
type AdSummary struct {
	PK          int64   `json:"pk" example:"1"`
	Image       *string `json:"image" example:"ads/bike.jpg"`
	Title       string  `json:"title" example:"二手腳踏車"`
	Price       *int    `json:"price" example:"1500"`
	Description *string `json:"description" example:"九成新"`
}

// AdDetail 單筆表示，附帶唯讀的作者聯絡資料
// swagger:model dto.AdDetail
type AdDetail struct {
	PK              int64   `json:"pk" example:"1"`
	Image           *string `json:"image" example:"ads/bike.jpg"`
	Title           string  `json:"title" example:"二手腳踏車"`
	Price           *int    `json:"price" example:"1500"`
	Description     *string `json:"description" example:"九成新"`
	Phone           *string `json:"phone" example:"+886912345678"`
	AuthorFirstName string  `json:"author_first_name" example:"Alice"`
	AuthorLastName  string  `json:"author_last_name" example:"Lee"`
	AuthorID        *int64  `json:"author_id" example:"1"`
}

// AdPage 分頁後的清單
// swagger:model dto.AdPage
type AdPage struct {
	Count    int         `json:"count" example:"9"`
	Page     int         `json:"page" example:"1"`
	PageSize int         `json:"page_size" example:"4"`
	Results  []AdSummary `json:"results"`
}

func NewAdSummary(a model.Ad) AdSummary {
	return AdSummary{
		PK:          a.ID,
		Image:       a.Image,
		Title:       a.Title,
		Price:       a.Price,
		Description: a.Description,
	}
}

func NewAdSummaries(ads []model.Ad) []AdSummary {
	out := make([]AdSummary, 0, len(ads))
	for _, a := range ads {
		out = append(out, NewAdSummary(a))
	}
	return out
}

func NewAdDetail(a *model.Ad) AdDetail {
	d := AdDetail{
		PK:          a.ID,
		Image:       a.Image,
		Title:       a.Title,
		Price:       a.Price,
		Description: a.Description,
		AuthorID:    a.AuthorID,
	}
	if a.Author != nil {
		d.Phone = a.Author.Phone
		d.AuthorFirstName = a.Author.FirstName
		d.AuthorLastName = a.Author.LastName
	}
	return d
}
