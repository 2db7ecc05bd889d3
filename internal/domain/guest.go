package domain

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

// GuestDefaultCategory buckets guest answers that carry no category.
const GuestDefaultCategory = "Geral"

// GuestAnswer is one entry of a device-scoped answer log.
type GuestAnswer struct {
	QuestionID string `json:"questionId"`
	IsCorrect  bool   `json:"isCorrect"`
	CategoryID string `json:"categoryId,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// UnmarshalJSON accepts ids written either as strings or as numbers.
func (g *GuestAnswer) UnmarshalJSON(data []byte) error {
	var raw struct {
		QuestionID json.RawMessage `json:"questionId"`
		IsCorrect  bool            `json:"isCorrect"`
		CategoryID json.RawMessage `json:"categoryId"`
		Timestamp  int64           `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	qid, err := flexibleID(raw.QuestionID)
	if err != nil {
		return err
	}
	cid, err := flexibleID(raw.CategoryID)
	if err != nil {
		return err
	}
	*g = GuestAnswer{QuestionID: qid, IsCorrect: raw.IsCorrect, CategoryID: cid, Timestamp: raw.Timestamp}
	return nil
}

func flexibleID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

// ParseGuestLog decodes a serialized log. Anything unreadable yields an empty log.
func ParseGuestLog(data []byte) []GuestAnswer {
	var entries []GuestAnswer
	if err := json.Unmarshal(data, &entries); err != nil {
		return []GuestAnswer{}
	}
	if entries == nil {
		return []GuestAnswer{}
	}
	return entries
}

// CategoryTally is the guest-side per-category aggregate.
type CategoryTally struct {
	CategoryID     string `json:"categoryId"`
	TotalAnswered  int    `json:"totalAnswered"`
	TotalCorrect   int    `json:"totalCorrect"`
	TotalIncorrect int    `json:"totalIncorrect"`
	Accuracy       int    `json:"accuracy"`
}

// GuestStats mirrors the authenticated aggregate shape for an anonymous device.
type GuestStats struct {
	TotalAnswered  int             `json:"totalAnswered"`
	TotalCorrect   int             `json:"totalCorrect"`
	TotalIncorrect int             `json:"totalIncorrect"`
	Accuracy       int             `json:"accuracy"`
	CurrentStreak  int             `json:"currentStreak"`
	BestStreak     int             `json:"bestStreak"`
	ByCategory     []CategoryTally `json:"byCategory"`
}

// ComputeGuestStats runs the same recompute-from-log tally used for users.
func ComputeGuestStats(entries []GuestAnswer) GuestStats {
	ordered := make([]GuestAnswer, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Timestamp < ordered[j].Timestamp })

	all := make([]AnswerOutcome, 0, len(ordered))
	perCategory := make(map[string][]AnswerOutcome)
	for _, e := range ordered {
		o := AnswerOutcome{IsCorrect: e.IsCorrect}
		if e.Timestamp > 0 {
			o.AnsweredAt = time.UnixMilli(e.Timestamp)
		}
		all = append(all, o)
		key := e.CategoryID
		if key == "" {
			key = GuestDefaultCategory
		}
		perCategory[key] = append(perCategory[key], o)
	}

	t := TallyOutcomes(all)
	stats := GuestStats{
		TotalAnswered:  t.TotalAnswered,
		TotalCorrect:   t.TotalCorrect,
		TotalIncorrect: t.TotalIncorrect,
		Accuracy:       t.Accuracy,
		CurrentStreak:  t.CurrentStreak,
		BestStreak:     t.BestStreak,
		ByCategory:     make([]CategoryTally, 0, len(perCategory)),
	}
	for key, outcomes := range perCategory {
		ct := TallyOutcomes(outcomes)
		stats.ByCategory = append(stats.ByCategory, CategoryTally{
			CategoryID:     key,
			TotalAnswered:  ct.TotalAnswered,
			TotalCorrect:   ct.TotalCorrect,
			TotalIncorrect: ct.TotalIncorrect,
			Accuracy:       ct.Accuracy,
		})
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		return stats.ByCategory[i].CategoryID < stats.ByCategory[j].CategoryID
	})
	return stats
}
