package curriculum

import "github.com/alexanderramin/coursedraft/internal/domain"

// Serialized is the order-stamped curriculum sent to the course API.
type Serialized struct {
	Sections []SerializedSection `json:"sections"`
}

type SerializedSection struct {
	ClientID string              `json:"clientId"`
	Title    string              `json:"title"`
	Order    int                 `json:"order"`
	Lectures []SerializedLecture `json:"lectures"`
}

type SerializedLecture struct {
	ClientID    string `json:"clientId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	Order       int    `json:"order"`
	VideoURL    string `json:"videoUrl,omitempty"`
}

// Serialize stamps each section and lecture with its zero-based position.
// The result depends only on the tree, so serializing an unchanged curriculum
// twice yields equal values.
func Serialize(c domain.Curriculum) Serialized {
	out := Serialized{Sections: make([]SerializedSection, 0, len(c.Sections))}
	for sIdx, s := range c.Sections {
		sec := SerializedSection{
			ClientID: s.ClientID,
			Title:    s.Title,
			Order:    sIdx,
			Lectures: make([]SerializedLecture, 0, len(s.Lectures)),
		}
		for lIdx, l := range s.Lectures {
			lec := SerializedLecture{
				ClientID:    l.ClientID,
				Title:       l.Title,
				Description: l.Description,
				Notes:       l.Notes,
				Order:       lIdx,
			}
			if l.Video.Uploaded() {
				lec.VideoURL = l.Video.RemoteURL
			}
			sec.Lectures = append(sec.Lectures, lec)
		}
		out.Sections = append(out.Sections, sec)
	}
	return out
}

// IDMapping maps client-local IDs to the durable IDs assigned by the server.
type IDMapping map[string]string

// ApplyServerIDs records server-assigned IDs on every section and lecture whose
// client ID appears in ids. Entries without a mapping keep their current ServerID.
func ApplyServerIDs(c domain.Curriculum, ids IDMapping) domain.Curriculum {
	if len(ids) == 0 {
		return c
	}
	out := c.Clone()
	for sIdx := range out.Sections {
		sec := &out.Sections[sIdx]
		if id, ok := ids[sec.ClientID]; ok {
			sec.ServerID = id
		}
		for lIdx := range sec.Lectures {
			lec := &sec.Lectures[lIdx]
			if id, ok := ids[lec.ClientID]; ok {
				lec.ServerID = id
			}
		}
	}
	return out
}
