package schema

import (
	"fmt"
	"time"

	"github.com/gnames/gnuuid"
)

// QualifiedIDer is implemented by models that have a prefixed ID, such as
// "F1" for a species or "R12" for a reaction.
type QualifiedIDer interface {
	QualifiedID() string
}

// Provenancer is implemented by models with creation and modification
// times.
type Provenancer interface {
	Created() time.Time
	Modified() time.Time
}

// Entity is a model with a qualified ID and a text form.
type Entity interface {
	QualifiedIDer
	fmt.Stringer
}

// Repr renders an entity as "<F1: H>".
func Repr(e Entity) string {
	return "<" + e.QualifiedID() + ": " + e.String() + ">"
}

// ContentKey returns the UUID v5 of a canonical text.
func ContentKey(text string) string {
	return gnuuid.New(text).String()
}

func qid(prefix string, id int) string {
	return fmt.Sprintf("%s%d", prefix, id)
}

func (s Species) QualifiedID() string         { return qid("F", s.ID) }
func (s Species) String() string              { return s.Text }
func (rp RP) QualifiedID() string             { return qid("RP", rp.ID) }
func (rp RP) String() string                  { return rp.Text }
func (s State) QualifiedID() string           { return qid("S", s.ID) }
func (s State) String() string                { return s.Text }
func (r Reaction) QualifiedID() string        { return qid("R", r.ID) }
func (r Reaction) String() string             { return r.Text }
func (p ProcessType) QualifiedID() string     { return qid("P", p.ID) }
func (p ProcessType) String() string          { return p.Abbreviation }
func (b Ref) QualifiedID() string             { return qid("B", b.ID) }
func (b Ref) String() string                  { return b.Title }
func (d ReactionDataSet) QualifiedID() string { return qid("D", d.ID) }
func (d ReactionDataSet) String() string      { return d.Reaction.Text }
