package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// strBefore returns the part of s before the first occurrence of sep.
func strBefore(s, sep string) string {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i]
	}
	return s
}

// strBetween returns the part of s between the first occurrences of
// open and end.
func strBetween(s, open, end string) string {
	i := strings.Index(s, open)
	if i < 0 {
		return ""
	}
	s = s[i+len(open):]
	if j := strings.Index(s, end); j >= 0 {
		return s[:j]
	}
	return ""
}

func jointSym(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "P") {
		return -1, fmt.Errorf("%w: joint symbol %q", ErrBadExpression, s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 {
		return -1, fmt.Errorf("%w: joint symbol %q", ErrBadExpression, s)
	}
	return n, nil
}

func angleSym(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "a") {
		return -1, fmt.Errorf("%w: angle symbol %q", ErrBadExpression, s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 {
		return -1, fmt.Errorf("%w: angle symbol %q", ErrBadExpression, s)
	}
	return n, nil
}

func lengthSym(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "L") {
		return "", fmt.Errorf("%w: length symbol %q", ErrBadExpression, s)
	}
	if _, err := strconv.Atoi(s[1:]); err != nil {
		return "", fmt.Errorf("%w: length symbol %q", ErrBadExpression, s)
	}
	return s, nil
}

func numLit(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: number %q", ErrBadExpression, s)
	}
	return v, nil
}

// Parse reads a solving plan from its text form, e.g.
//
//	PLAP[P0,a0,L0,P1](P2);PLLP[P2,L1,L2,P3](P4)
//
// Steps are separated by semicolons. Joint numbers in the text are taken
// verbatim; remapping (e.g. collapsing duplicate joints) is the caller's
// business, see PlanProfile.
func Parse(text string) ([]Step, error) {
	var steps []Step
	for _, raw := range strings.Split(text, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		st, err := parseStep(raw)
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: empty plan", ErrBadExpression)
	}
	tracer().Debugf("parsed plan of %d steps: %s", len(steps), AsString(steps))
	return steps, nil
}

func parseStep(raw string) (Step, error) {
	st := Step{Base: -1, Base2: -1, Ref: -1, Ref2: -1, Input: -1, Target: -1}
	opName := strings.TrimSpace(strBefore(raw, "["))
	params := strings.Split(strBetween(raw, "[", "]"), ",")
	target := strBetween(raw, "(", ")")
	if target == "" {
		return st, fmt.Errorf("%w: step %q has no target", ErrBadExpression, raw)
	}
	var err error
	if st.Target, err = jointSym(target); err != nil {
		return st, err
	}
	bad := func() (Step, error) {
		return st, fmt.Errorf("%w: step %q", ErrBadExpression, raw)
	}
	switch opName {
	case "PLAP":
		st.Op = PLAP
		if len(params) != 3 && len(params) != 4 {
			return bad()
		}
		if st.Base, err = jointSym(params[0]); err != nil {
			return st, err
		}
		if st.Input, err = angleSym(params[1]); err != nil {
			return st, err
		}
		if st.LSym, err = lengthSym(params[2]); err != nil {
			return st, err
		}
		if len(params) == 4 {
			if st.Ref, err = jointSym(params[3]); err != nil {
				return st, err
			}
		}
	case "PLLP":
		st.Op = PLLP
		if len(params) != 4 {
			return bad()
		}
		if st.Base, err = jointSym(params[0]); err != nil {
			return st, err
		}
		if st.LSym, err = lengthSym(params[1]); err != nil {
			return st, err
		}
		if st.LSym2, err = lengthSym(params[2]); err != nil {
			return st, err
		}
		if st.Base2, err = jointSym(params[3]); err != nil {
			return st, err
		}
	case "PLPP":
		st.Op = PLPP
		if len(params) != 4 {
			return bad()
		}
		if st.Base, err = jointSym(params[0]); err != nil {
			return st, err
		}
		if st.LSym, err = lengthSym(params[1]); err != nil {
			return st, err
		}
		if st.Ref, err = jointSym(params[2]); err != nil {
			return st, err
		}
		if st.Ref2, err = jointSym(params[3]); err != nil {
			return st, err
		}
	case "PXY":
		st.Op = PXY
		if len(params) != 3 {
			return bad()
		}
		if st.Base, err = jointSym(params[0]); err != nil {
			return st, err
		}
		if st.Dx, err = numLit(params[1]); err != nil {
			return st, err
		}
		if st.Dy, err = numLit(params[2]); err != nil {
			return st, err
		}
	default:
		return st, fmt.Errorf("%w: unknown operation %q", ErrBadExpression, opName)
	}
	return st, nil
}
