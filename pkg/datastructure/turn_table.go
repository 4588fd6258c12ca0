package datastructure

// TurnRecord. satu kemungkinan belokan setelah via edge, hasil klasifikasi yang disimpan ke kv.
type TurnRecord struct {
	ToEdge     Index
	Angle      float64
	Valid      bool
	TurnType   uint8
	Modifier   uint8
	Confidence float64
	Penalty    float64 // second, pkg.INF_WEIGHT kalau tidak valid
}

// TurnTable. semua belokan di ujung ViaEdge (FromNode -> head), urut berdasarkan angle.
type TurnTable struct {
	ViaEdge  Index
	FromNode Index
	Turns    []TurnRecord
}
