package models

import (
	"time"
)

type Language string

const (
	LangEN Language = "en"
	LangDE Language = "de"
)

func (l Language) Valid() bool {
	return l == LangEN || l == LangDE
}

type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

type Notice struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Variant     NoticeVariant `json:"variant"`
}

// PageState is the view state of one visitor's page. It only ever moves from
// not-submitted to submitted.
type PageState struct {
	ID        string        `json:"id"`
	Lang      Language      `json:"lang"`
	Loading   bool          `json:"loading"`
	Submitted bool          `json:"submitted"`
	Selected  []Topic       `json:"selected"`
	Stress    *StressResult `json:"stress"`
	Weather   *WeatherData  `json:"weather"`
	Notice    *Notice       `json:"notice,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func NewPageState(id string, lang Language, now time.Time) *PageState {
	return &PageState{
		ID:        id,
		Lang:      lang,
		Selected:  []Topic{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ToggleTopic adds the topic to the end of the selection, or removes it if it
// is already selected.
func (p *PageState) ToggleTopic(topic Topic) {
	for i, selected := range p.Selected {
		if selected == topic {
			p.Selected = append(p.Selected[:i:i], p.Selected[i+1:]...)
			return
		}
	}
	p.Selected = append(p.Selected, topic)
}

func (p *PageState) IsSelected(topic Topic) bool {
	for _, selected := range p.Selected {
		if selected == topic {
			return true
		}
	}
	return false
}

func (p *PageState) ToggleLanguage() {
	if p.Lang == LangEN {
		p.Lang = LangDE
	} else {
		p.Lang = LangEN
	}
}

// Clone returns a copy that shares nothing mutable with p.
func (p *PageState) Clone() PageState {
	c := *p
	c.Selected = append([]Topic{}, p.Selected...)
	if p.Stress != nil {
		stress := *p.Stress
		c.Stress = &stress
	}
	if p.Weather != nil {
		weather := *p.Weather
		c.Weather = &weather
	}
	if p.Notice != nil {
		notice := *p.Notice
		c.Notice = &notice
	}
	return c
}
