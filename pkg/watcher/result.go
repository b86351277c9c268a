package watcher

// ResultKind tells which variant a Result holds
type ResultKind int

const (
	// NoResult means the action implicated no paths
	NoResult ResultKind = iota
	// OneResult means the action implicated a single path
	OneResult
	// ManyResult means the action implicated a list of paths
	ManyResult
)

// Result is the normalized outcome of a watch action
type Result struct {
	kind  ResultKind
	paths []string
}

// Empty returns a Result holding no paths
func Empty() Result {
	return Result{kind: NoResult}
}

// One returns a Result holding path, or Empty for ""
func One(path string) Result {
	if path == "" {
		return Empty()
	}
	return Result{kind: OneResult, paths: []string{path}}
}

// Many returns a Result holding a copy of paths, or Empty when there are none
func Many(paths []string) Result {
	if len(paths) == 0 {
		return Empty()
	}
	cp := make([]string, len(paths))
	copy(cp, paths)
	return Result{kind: ManyResult, paths: cp}
}

// Kind returns the variant
func (r Result) Kind() ResultKind {
	return r.kind
}

// IsEmpty reports whether the result implicates no paths
func (r Result) IsEmpty() bool {
	return len(r.paths) == 0
}

// Paths returns the implicated paths in order
func (r Result) Paths() []string {
	return r.paths
}

// Normalize converts an action's return value into a Result.
//
// string is one path ("" is none), []string is used as-is, []interface{} is
// accepted only when every element is a string, and a Result passes through.
// Anything else, numbers, maps and nil included, implicates nothing.
func Normalize(v interface{}) Result {
	switch val := v.(type) {
	case Result:
		return val
	case string:
		return One(val)
	case []string:
		return Many(val)
	case []interface{}:
		paths := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return Empty()
			}
			paths = append(paths, s)
		}
		return Many(paths)
	default:
		return Empty()
	}
}
