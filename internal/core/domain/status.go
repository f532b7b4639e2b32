package domain

// Display labels reused across charts. The front-end is Portuguese, so the
// labels are too.
const (
	UnknownLabel = "Desconhecido"
	OthersLabel  = "Outros"
)

// StatusBucket is one of the four coarse status groupings shown on the
// dashboard header.
type StatusBucket int

const (
	BucketNone StatusBucket = iota
	BucketNew
	BucketInProgress
	BucketPending
	BucketResolved
)

// statusLabels maps GLPI ticket status codes to their display labels.
// This is a closed business rule, not configurable at request time.
var statusLabels = map[int]string{
	1: "Novo",
	2: "Em Andamento (Atribuído)",
	3: "Pendente",
	4: "Em Andamento (Planejado)",
	5: "Solucionado",
	6: "Fechado",
}

// StatusLabel returns the display label for a GLPI status code, or
// UnknownLabel for codes outside the vocabulary. It never fails.
func StatusLabel(code int) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return UnknownLabel
}

// StatusBucketFor partitions status codes into the four dashboard buckets.
// Unrecognized codes map to BucketNone.
func StatusBucketFor(code int) StatusBucket {
	switch code {
	case 1:
		return BucketNew
	case 2, 4:
		return BucketInProgress
	case 3:
		return BucketPending
	case 5, 6:
		return BucketResolved
	default:
		return BucketNone
	}
}

// StatusCodeForLabel resolves a display label back to its status code.
// The second return value is false when the label is not in the vocabulary.
func StatusCodeForLabel(label string) (int, bool) {
	for code, l := range statusLabels {
		if l == label {
			return code, true
		}
	}
	return 0, false
}
