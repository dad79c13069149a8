// Package catalog models the channel lineup shown by the browsing grid.
package catalog

// Channel is one tunable channel in the lineup.
type Channel struct {
	ID     string
	Number int
	Name   string
	Genre  string
}

// Key returns the stable element key used by the focus engine for this
// channel's tile.
func (c Channel) Key() string {
	return "channel:" + c.ID
}

// Row is one genre row of the grid.
type Row struct {
	Genre    string
	Channels []Channel
}

// BuildRows groups channels into genre rows, preserving the lineup's
// first-seen genre order and the channel order within each genre.
func BuildRows(channels []Channel) []Row {
	index := make(map[string]int)
	rows := make([]Row, 0, 8)
	for _, ch := range channels {
		i, ok := index[ch.Genre]
		if !ok {
			i = len(rows)
			index[ch.Genre] = i
			rows = append(rows, Row{Genre: ch.Genre})
		}
		rows[i].Channels = append(rows[i].Channels, ch)
	}
	return rows
}

// DefaultLineup is the seed lineup used when the catalog database is empty.
func DefaultLineup() []Channel {
	return []Channel{
		{ID: "cnn", Number: 100, Name: "CNN", Genre: "News"},
		{ID: "bbc", Number: 101, Name: "BBC World", Genre: "News"},
		{ID: "aljazeera", Number: 102, Name: "Al Jazeera", Genre: "News"},
		{ID: "euronews", Number: 103, Name: "Euronews", Genre: "News"},
		{ID: "espn", Number: 200, Name: "ESPN", Genre: "Sports"},
		{ID: "skysports", Number: 201, Name: "Sky Sports", Genre: "Sports"},
		{ID: "eurosport", Number: 202, Name: "Eurosport", Genre: "Sports"},
		{ID: "nbatv", Number: 203, Name: "NBA TV", Genre: "Sports"},
		{ID: "hbo", Number: 300, Name: "HBO", Genre: "Movies"},
		{ID: "tcm", Number: 301, Name: "TCM", Genre: "Movies"},
		{ID: "filmfour", Number: 302, Name: "Film4", Genre: "Movies"},
		{ID: "amc", Number: 303, Name: "AMC", Genre: "Movies"},
		{ID: "cartoonnetwork", Number: 400, Name: "Cartoon Network", Genre: "Kids"},
		{ID: "nick", Number: 401, Name: "Nickelodeon", Genre: "Kids"},
		{ID: "disney", Number: 402, Name: "Disney Channel", Genre: "Kids"},
		{ID: "mtv", Number: 500, Name: "MTV", Genre: "Music"},
		{ID: "vh1", Number: 501, Name: "VH1", Genre: "Music"},
		{ID: "natgeo", Number: 600, Name: "Nat Geo", Genre: "Documentary"},
		{ID: "discovery", Number: 601, Name: "Discovery", Genre: "Documentary"},
		{ID: "history", Number: 602, Name: "History", Genre: "Documentary"},
	}
}
