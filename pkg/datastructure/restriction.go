package datastructure

type turnKey struct {
	fromEdge, via, toEdge Index
}

type viaKey struct {
	fromEdge, via Index
}

// TurnRestriction. restriction yang sudah di-resolve ke edge id.
type TurnRestriction struct {
	FromEdge Index
	Via      Index
	ToEdge   Index
	Only     bool // only_* restriction: ToEdge is the only allowed continuation
}

// RestrictionMap. turn restriction lookup by (fromEdge, via, toEdge).
type RestrictionMap struct {
	banned map[turnKey]struct{}
	only   map[viaKey]Index
	list   []TurnRestriction
}

func NewRestrictionMap() *RestrictionMap {
	return &RestrictionMap{
		banned: make(map[turnKey]struct{}),
		only:   make(map[viaKey]Index),
		list:   make([]TurnRestriction, 0),
	}
}

func (rm *RestrictionMap) Add(r TurnRestriction) {
	rm.list = append(rm.list, r)
	if r.Only {
		rm.only[viaKey{r.FromEdge, r.Via}] = r.ToEdge
		return
	}
	rm.banned[turnKey{r.FromEdge, r.Via, r.ToEdge}] = struct{}{}
}

// IsRestricted reports whether a no_* restriction forbids fromEdge -> via -> toEdge.
func (rm *RestrictionMap) IsRestricted(via, fromEdge, toEdge Index) bool {
	_, ok := rm.banned[turnKey{fromEdge, via, toEdge}]
	return ok
}

// OnlyTurn returns the mandatory continuation after fromEdge at via, if any.
func (rm *RestrictionMap) OnlyTurn(via, fromEdge Index) (Index, bool) {
	to, ok := rm.only[viaKey{fromEdge, via}]
	return to, ok
}

func (rm *RestrictionMap) GetRestrictions() []TurnRestriction {
	return rm.list
}

func (rm *RestrictionMap) Len() int {
	return len(rm.list)
}
