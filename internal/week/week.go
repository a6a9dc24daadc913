// Package week computes the Monday-to-Sunday aggregation window over tasks
// collected from value streams and initiatives. Everything here is a pure
// function of its inputs.
package week

import (
	"sort"
	"time"

	"github.com/starford/raido/internal/models"
)

// OriginType identifies the kind of entity a task was collected from.
type OriginType string

const (
	OriginValueStream OriginType = "value-stream"
	OriginInitiative  OriginType = "initiative"
)

// Label returns the human-readable origin label used in reports.
func (o OriginType) Label() string {
	if o == OriginInitiative {
		return "Initiative"
	}
	return "Value Stream"
}

// Entry is one task paired with the entity it was collected from.
type Entry struct {
	OriginType OriginType  `json:"originType"`
	OriginName string      `json:"originName"`
	Task       models.Task `json:"task"`
}

// DayGroup is the display-mode grouping: all entries created on one
// calendar day.
type DayGroup struct {
	Day     string  `json:"day"`
	Entries []Entry `json:"entries"`
}

// OriginGroup is the export-mode grouping: closed entries under one origin
// name.
type OriginGroup struct {
	Name    string     `json:"name"`
	Type    OriginType `json:"type"`
	Entries []Entry    `json:"entries"`
}

// Window returns the Monday 00:00:00.000 start and Sunday 23:59:59.999 end
// of the ISO week containing ref, in ref's location. Monday is day 1; a ref
// falling on Sunday belongs to the week that started the preceding Monday.
func Window(ref time.Time) (start, end time.Time) {
	wd := int(ref.Weekday())
	if wd == 0 {
		wd = 7
	}
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	start = day.AddDate(0, 0, 1-wd)
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// InWindow reports whether t falls within [start, end], inclusive both ends.
func InWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// DayKey truncates a timestamp to its calendar date.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Collect scans every task in every value stream and initiative and returns
// those created within the week containing ref, regardless of done state.
func Collect(streams []models.ValueStream, initiatives []models.Initiative, ref time.Time) []Entry {
	start, end := Window(ref)
	var out []Entry
	for _, s := range streams {
		for _, t := range s.Tasks {
			if InWindow(t.Created, start, end) {
				out = append(out, Entry{OriginType: OriginValueStream, OriginName: s.Name, Task: t})
			}
		}
	}
	for _, in := range initiatives {
		for _, t := range in.Tasks {
			if InWindow(t.Created, start, end) {
				out = append(out, Entry{OriginType: OriginInitiative, OriginName: in.Name, Task: t})
			}
		}
	}
	return out
}

// ByDay groups entries by the calendar day of creation, days ascending.
// Entry order within a day follows the input order.
func ByDay(entries []Entry) []DayGroup {
	grouped := make(map[string][]Entry)
	for _, e := range entries {
		day := DayKey(e.Task.Created)
		grouped[day] = append(grouped[day], e)
	}
	days := make([]string, 0, len(grouped))
	for day := range grouped {
		days = append(days, day)
	}
	sort.Strings(days)
	out := make([]DayGroup, 0, len(days))
	for _, day := range days {
		out = append(out, DayGroup{Day: day, Entries: grouped[day]})
	}
	return out
}

// DayItems is one owner's tasks and notes created on one calendar day.
type DayItems struct {
	Day   string        `json:"day"`
	Tasks []models.Task `json:"tasks"`
	Notes []models.Note `json:"notes"`
}

// ItemsByDay groups a single owner's tasks and notes by the calendar day of
// creation, days descending. Item order within a day follows the input
// order. Unlike Collect this spans the owner's whole history, not one week.
func ItemsByDay(tasks []models.Task, notes []models.Note) []DayItems {
	grouped := make(map[string]*DayItems)
	days := []string{}
	get := func(day string) *DayItems {
		g, ok := grouped[day]
		if !ok {
			g = &DayItems{Day: day, Tasks: []models.Task{}, Notes: []models.Note{}}
			grouped[day] = g
			days = append(days, day)
		}
		return g
	}
	for _, t := range tasks {
		g := get(DayKey(t.Created))
		g.Tasks = append(g.Tasks, t)
	}
	for _, n := range notes {
		g := get(DayKey(n.Created))
		g.Notes = append(g.Notes, n)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	out := make([]DayItems, 0, len(days))
	for _, day := range days {
		out = append(out, *grouped[day])
	}
	return out
}

// ExportGroups collects the week's tasks, keeps only closed ones, and
// groups them by origin name, groups sorted alphabetically. This is the
// structure handed to the report renderer.
func ExportGroups(streams []models.ValueStream, initiatives []models.Initiative, ref time.Time) []OriginGroup {
	var byName []OriginGroup
	idx := make(map[string]int)
	for _, e := range Collect(streams, initiatives, ref) {
		if !e.Task.Done {
			continue
		}
		i, ok := idx[e.OriginName]
		if !ok {
			i = len(byName)
			idx[e.OriginName] = i
			byName = append(byName, OriginGroup{Name: e.OriginName, Type: e.OriginType})
		}
		byName[i].Entries = append(byName[i].Entries, e)
	}
	sort.SliceStable(byName, func(a, b int) bool { return byName[a].Name < byName[b].Name })
	return byName
}
