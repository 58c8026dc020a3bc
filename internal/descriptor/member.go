package descriptor

import "strings"

// Member is a reference to a field or method of a class.
type Member struct {
	Owner      string // internal name of the declaring class
	Name       string
	Descriptor string
}

// SplitMember decomposes a member reference. The name is written
// owner.name with the descriptor supplied separately, or in the combined
// owner.name(desc) form with desc left empty. The owner must be a valid
// internal name and the descriptor a valid field or method descriptor.
func SplitMember(name, desc string) (Member, error) {
	full := name + desc
	if desc == "" {
		if i := strings.IndexByte(name, '('); i >= 0 {
			name, desc = name[:i], name[i:]
		}
	}

	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 || dot == len(name)-1 {
		return Member{}, &Error{Text: full, Reason: "expected owner.name"}
	}
	if desc == "" {
		return Member{}, &Error{Text: full, Reason: "missing member descriptor"}
	}

	owner := name[:dot]
	if _, err := ObjectType(owner); err != nil {
		return Member{}, err
	}
	if _, err := Parse(desc); err != nil {
		return Member{}, err
	}
	return Member{Owner: owner, Name: name[dot+1:], Descriptor: desc}, nil
}
