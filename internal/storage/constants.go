package storage

const (
	trackedKey = "converter:tracked"
)
