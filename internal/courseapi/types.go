package courseapi

import (
	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
)

// envelope is the {status, data} wrapper every course API response uses.
type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// errorBody is the subset of an error response we surface.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CreatedCourse is the server's answer to a draft creation.
type CreatedCourse struct {
	ID string
}

type courseDTO struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
}

func (c courseDTO) id() string {
	if c.MongoID != "" {
		return c.MongoID
	}
	return c.ID
}

// BasicInfoPayload is the wire form of the basic-info step.
type BasicInfoPayload struct {
	Title            string `json:"title"`
	Subtitle         string `json:"subtitle,omitempty"`
	Category         string `json:"category"`
	SubCategory      string `json:"subCategory,omitempty"`
	Topic            string `json:"topic"`
	PrimaryLanguage  string `json:"primaryLanguage"`
	SubtitleLanguage string `json:"subtitleLanguage,omitempty"`
	Level            string `json:"level"`
	DurationValue    *int   `json:"durationValue,omitempty"`
	DurationUnit     string `json:"durationUnit"`
}

func NewBasicInfoPayload(b domain.BasicInfo) BasicInfoPayload {
	return BasicInfoPayload{
		Title:            b.Title,
		Subtitle:         b.Subtitle,
		Category:         b.Category,
		SubCategory:      b.SubCategory,
		Topic:            b.Topic,
		PrimaryLanguage:  b.PrimaryLanguage,
		SubtitleLanguage: b.SubtitleLanguage,
		Level:            string(b.Level),
		DurationValue:    b.DurationValue,
		DurationUnit:     string(b.DurationUnit),
	}
}

// AdvancedInfoPayload is the wire form of the advanced-info step. Media
// references are only sent once they have a remote URL.
type AdvancedInfoPayload struct {
	Description      string   `json:"description"`
	WhatYouWillLearn []string `json:"whatYouWillLearn"`
	TargetAudience   []string `json:"targetAudience"`
	Requirements     []string `json:"requirements"`
	ThumbnailURL     string   `json:"thumbnail,omitempty"`
	TrailerURL       string   `json:"trailer,omitempty"`
}

func NewAdvancedInfoPayload(a domain.AdvancedInfo) AdvancedInfoPayload {
	p := AdvancedInfoPayload{
		Description:      a.Description,
		WhatYouWillLearn: a.WhatYouWillLearn,
		TargetAudience:   a.TargetAudience,
		Requirements:     a.Requirements,
	}
	if a.Thumbnail.Uploaded() {
		p.ThumbnailURL = a.Thumbnail.RemoteURL
	}
	if a.Trailer.Uploaded() {
		p.TrailerURL = a.Trailer.RemoteURL
	}
	return p
}

// CurriculumAck is the server's answer to a curriculum save. Sections and
// lectures may be empty when the server does not echo identifiers.
type CurriculumAck struct {
	Sections []AckNode `json:"sections"`
}

// AckNode pairs a client ID with the durable ID the server assigned.
type AckNode struct {
	ClientID string    `json:"clientId"`
	ID       string    `json:"id"`
	MongoID  string    `json:"_id"`
	Lectures []AckNode `json:"lectures,omitempty"`
}

func (n AckNode) serverID() string {
	if n.ID != "" {
		return n.ID
	}
	return n.MongoID
}

// IDMapping flattens the ack into clientId -> server ID pairs.
func (a CurriculumAck) IDMapping() curriculum.IDMapping {
	ids := curriculum.IDMapping{}
	var walk func(nodes []AckNode)
	walk = func(nodes []AckNode) {
		for _, n := range nodes {
			if n.ClientID != "" && n.serverID() != "" {
				ids[n.ClientID] = n.serverID()
			}
			walk(n.Lectures)
		}
	}
	walk(a.Sections)
	return ids
}

type categoryDTO struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CourseCount int    `json:"courseCount"`
	IsActive    bool   `json:"isActive"`
	Order       int    `json:"order"`
}

func (c categoryDTO) toDomain() domain.Category {
	return domain.Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CourseCount: c.CourseCount,
		IsActive:    c.IsActive,
		Order:       c.Order,
	}
}
