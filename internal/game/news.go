package game

import (
	"fmt"
	"strings"
)

type NewsCategory string

const (
	NewsContractDemand NewsCategory = "New contract"
	NewsFans           NewsCategory = "Fans"
	NewsTrainingGreat  NewsCategory = "Training ++"
	NewsTrainingGood   NewsCategory = "Training +"
	NewsTrainingBad    NewsCategory = "Training -"
	NewsTrainingAwful  NewsCategory = "Training --"
	NewsSkillUp        NewsCategory = "Skill +"
	NewsSkillDown      NewsCategory = "Skill -"
	NewsRetired        NewsCategory = "Retired"
	NewsJuniors        NewsCategory = "Juniors"
	NewsForcedSale     NewsCategory = "Forced sold player"
)

// newsOrder is the order categories are reported in.
var newsOrder = []NewsCategory{
	NewsContractDemand, NewsFans,
	NewsTrainingGreat, NewsTrainingGood, NewsTrainingBad, NewsTrainingAwful,
	NewsSkillUp, NewsSkillDown, NewsRetired, NewsJuniors, NewsForcedSale,
}

var newsFormats = map[NewsCategory]string{
	NewsContractDemand: "%s demands a new contract!",
	NewsFans:           "Your fans %s your team's performance.",
	NewsTrainingGreat:  "%s trained very well!",
	NewsTrainingGood:   "%s trained well.",
	NewsTrainingBad:    "%s trained badly.",
	NewsTrainingAwful:  "%s trained very badly.",
	NewsSkillUp:        "%s improved skill!",
	NewsSkillDown:      "%s decreased skill.",
	NewsRetired:        "%s has retired from playing football.",
	NewsJuniors:        "%s were promoted from your youth academy.",
	NewsForcedSale:     "%s was sold by the board to balance your finances.",
}

// News is one event of a team's week. Subject names the player; Value
// carries the happiness change for fan news.
type News struct {
	Category NewsCategory `json:"category"`
	Subject  string       `json:"subject,omitempty"`
	Value    float64      `json:"value,omitempty"`
}

type NewsList []News

// Lines renders the week's news, one sentence per category.
func (l NewsList) Lines() []string {
	var lines []string
	for _, cat := range newsOrder {
		var subjects []string
		var fans *News
		for i := range l {
			if l[i].Category != cat {
				continue
			}
			if cat == NewsFans {
				fans = &l[i]
				break
			}
			subjects = append(subjects, l[i].Subject)
		}

		var s string
		if cat == NewsFans {
			if fans == nil {
				continue
			}
			switch {
			case fans.Value <= -0.5:
				s = "disliked"
			case fans.Value >= 0.5:
				s = "liked"
			}
		} else {
			s = joinNames(subjects)
		}
		if s != "" {
			lines = append(lines, fmt.Sprintf(newsFormats[cat], s))
		}
	}
	return lines
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// trainingNews maps a weekly training delta to its news category, or ""
// when it is too small to mention.
func trainingNews(training float64) NewsCategory {
	switch {
	case training >= 0.03:
		return NewsTrainingGreat
	case training >= 0.015:
		return NewsTrainingGood
	case training <= -0.03:
		return NewsTrainingAwful
	case training <= -0.015:
		return NewsTrainingBad
	}
	return ""
}
