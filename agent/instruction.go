package agent

// Provider computes instruction text per question, for callers whose system
// prompt depends on the task (injecting the date, a persona, retrieval hints).
type Provider interface {
	Instruction(question string) (string, error)
}

// Func adapts an ordinary function into a Provider.
type Func func(question string) (string, error)

// Instruction implements Provider.
func (f Func) Instruction(question string) (string, error) { return f(question) }

// Instruction is either a fixed system prompt or a Provider, resolved once
// at the start of each episode.
type Instruction struct {
	text     string
	provider Provider
}

// NewInstructionFromText wraps a fixed system prompt.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider wraps a dynamic Provider.
func NewInstructionFromProvider(p Provider) Instruction { return Instruction{provider: p} }

// NewInstructionFromFunc wraps a function as a dynamic provider.
func NewInstructionFromFunc(f func(question string) (string, error)) Instruction {
	return Instruction{provider: Func(f)}
}

// IsStatic reports whether the prompt is fixed text.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// Resolve produces the prompt for one episode.
func (i Instruction) Resolve(question string) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(question)
	}
	return i.text, nil
}
