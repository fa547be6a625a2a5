package geocode

import (
	"bytes"
	"encoding/json"
)

type reverseResponse struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// PlaceDetails mirrors the parts of the Nominatim details payload used for
// the photo lookup.
type PlaceDetails struct {
	PlaceID   int64  `json:"place_id"`
	LocalName string `json:"localname"`
	Names     Tags   `json:"names"`
	ExtraTags Tags   `json:"extratags"`
}

// Tags is an OSM tag map. Nominatim encodes an empty map as [].
type Tags map[string]string

func (t *Tags) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("[]")) || bytes.Equal(trimmed, []byte("null")) {
		*t = Tags{}
		return nil
	}
	m := map[string]string{}
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	*t = m
	return nil
}

// PhotoResponse mirrors the MediaWiki query payload for prop=images, which is
// the shape the map page reads.
type PhotoResponse struct {
	Query *PhotoQuery `json:"query,omitempty"`
}

type PhotoQuery struct {
	Pages map[string]PhotoPage `json:"pages"`
}

type PhotoPage struct {
	PageID int64        `json:"pageid,omitempty"`
	Title  string       `json:"title"`
	Images []PhotoImage `json:"images,omitempty"`
}

type PhotoImage struct {
	Title string `json:"title"`
}
