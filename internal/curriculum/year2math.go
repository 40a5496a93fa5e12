package curriculum

import (
	_ "embed"
	"sync"
)

//go:embed data/year2_math.yaml
var year2MathYAML []byte

var (
	year2MathOnce sync.Once
	year2Math     *Curriculum
)

// Year2Math returns the built-in UK Year 2 maths curriculum.
func Year2Math() *Curriculum {
	year2MathOnce.Do(func() {
		c, err := Parse(year2MathYAML)
		if err != nil {
			panic("embedded year 2 maths curriculum is invalid: " + err.Error())
		}
		year2Math = c
	})
	return year2Math
}
