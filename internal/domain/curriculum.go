package domain

// Curriculum is the ordered section tree of a course. A reachable curriculum
// always holds at least one section and every section at least one lecture.
type Curriculum struct {
	Sections []Section
}

// Section groups lectures. ClientID is generated locally and only addresses the
// section during this editing session; ServerID is set once the API has
// acknowledged the curriculum.
type Section struct {
	ClientID string
	ServerID string
	Title    string
	Lectures []Lecture
}

type Lecture struct {
	ClientID    string
	ServerID    string
	Title       string
	Description string
	Notes       string
	Video       *FileRef
}

// Default titles used for freshly added sections and lectures.
const (
	DefaultSectionTitle = "Section name"
	DefaultLectureTitle = "Lecture title"
)

// FindSection returns the index of the section with the given client ID, or -1.
func (c Curriculum) FindSection(clientID string) int {
	for i, s := range c.Sections {
		if s.ClientID == clientID {
			return i
		}
	}
	return -1
}

// FindLecture returns the index of the lecture with the given client ID, or -1.
func (s Section) FindLecture(clientID string) int {
	for i, l := range s.Lectures {
		if l.ClientID == clientID {
			return i
		}
	}
	return -1
}

// LectureCount returns the number of lectures across all sections.
func (c Curriculum) LectureCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Lectures)
	}
	return n
}

func (c Curriculum) Clone() Curriculum {
	if c.Sections == nil {
		return Curriculum{}
	}
	out := Curriculum{Sections: make([]Section, len(c.Sections))}
	for i, s := range c.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

func (s Section) Clone() Section {
	out := s
	if s.Lectures != nil {
		out.Lectures = make([]Lecture, len(s.Lectures))
		for i, l := range s.Lectures {
			out.Lectures[i] = l.Clone()
		}
	}
	return out
}

func (l Lecture) Clone() Lecture {
	out := l
	out.Video = cloneFileRef(l.Video)
	return out
}
