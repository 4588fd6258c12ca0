package util

// IDMap. string interning buat street name. id 0 selalu string kosong (jalan tanpa nama).
type IDMap struct {
	StrToID map[string]int
	IDToStr map[int]string
}

func NewIdMap() IDMap {
	m := IDMap{
		StrToID: make(map[string]int),
		IDToStr: make(map[int]string),
	}
	m.StrToID[""] = 0
	m.IDToStr[0] = ""
	return m
}

// GetID returns the id of s, registering it when it is new.
func (m IDMap) GetID(s string) int {
	if id, ok := m.StrToID[s]; ok {
		return id
	}
	id := len(m.StrToID)
	m.StrToID[s] = id
	m.IDToStr[id] = s
	return id
}

func (m IDMap) GetStr(id int) string {
	return m.IDToStr[id]
}

// Set registers s under a fixed id. used when reading a graph file back.
func (m IDMap) Set(id int, s string) {
	m.StrToID[s] = id
	m.IDToStr[id] = s
}

func (m IDMap) Len() int {
	return len(m.IDToStr)
}
