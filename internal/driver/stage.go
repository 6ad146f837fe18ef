package driver

import "fmt"

// Stage selects how far Compile runs.
type Stage string

const (
	StageTokenize   Stage = "tokenize"
	StageCommands   Stage = "commands"
	StageStatements Stage = "statements"
	StageBind       Stage = "bind"
	StageAll        Stage = "all"
)

var stageRank = map[Stage]int{
	StageTokenize:   1,
	StageCommands:   2,
	StageStatements: 3,
	StageBind:       4,
	StageAll:        4,
}

// ParseStage validates a --stages flag value.
func ParseStage(s string) (Stage, error) {
	if s == "" {
		return StageAll, nil
	}
	st := Stage(s)
	if _, ok := stageRank[st]; !ok {
		return "", fmt.Errorf("unknown stage %q (expected: tokenize|commands|statements|bind|all)", s)
	}
	return st, nil
}

// runs reports whether a compilation stopping at s executes stage next.
func (s Stage) runs(next Stage) bool {
	rank, ok := stageRank[s]
	if !ok {
		panic(fmt.Sprintf("driver: unknown stage %q", s))
	}
	return stageRank[next] <= rank
}
