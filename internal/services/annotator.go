package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jdkato/prose/v2"
)

// Token is a single tagged word. Tag uses the Penn Treebank tag set.
type Token struct {
	Text string
	Tag  string
}

// Entity is a named-entity span such as PERSON or GPE.
type Entity struct {
	Text  string
	Label string
}

// Annotation holds the result of one annotation pass, in document order.
type Annotation struct {
	Tokens   []Token
	Entities []Entity
}

// Annotator runs part-of-speech tagging and named-entity recognition.
// Implementations are loaded once and shared read-only across calls.
type Annotator interface {
	Annotate(text string) (*Annotation, error)
	Name() string
	Check(ctx context.Context) error
}

const warmupText = "Jane Doe is a software engineer in London."

type proseAnnotator struct {
	model *prose.Model
	name  string
}

// LoadAnnotator loads the tagging and NER model. An empty modelPath selects the
// built-in English model; otherwise a NER model trained with prose is read from disk.
func LoadAnnotator(modelPath string) (annotator Annotator, err error) {
	defer func() {
		if r := recover(); r != nil {
			annotator = nil
			err = fmt.Errorf("%w: %v", ErrModelUnavailable, r)
		}
	}()

	var model *prose.Model
	name := "prose/en"

	if modelPath != "" {
		info, statErr := os.Stat(modelPath)
		if statErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, statErr)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: model path %s is not a directory", ErrModelUnavailable, modelPath)
		}
		model = prose.ModelFromDisk(modelPath)
		name = model.Name
	}

	// The warm-up document loads the default model when none was given,
	// and proves the model can annotate before we accept it.
	opts := []prose.DocOpt{prose.WithSegmentation(false)}
	if model != nil {
		opts = append(opts, prose.UsingModel(model))
	}
	doc, err := prose.NewDocument(warmupText, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: warm-up failed: %v", ErrModelUnavailable, err)
	}
	if doc.Model == nil || len(doc.Tokens()) == 0 {
		return nil, fmt.Errorf("%w: warm-up produced no tokens", ErrModelUnavailable)
	}

	log.Printf("🧠 Language model %s loaded\n", name)

	return &proseAnnotator{model: doc.Model, name: name}, nil
}

func (a *proseAnnotator) Annotate(text string) (annotation *Annotation, err error) {
	defer func() {
		if r := recover(); r != nil {
			annotation = nil
			err = fmt.Errorf("%w: annotation failed: %v", ErrModelUnavailable, r)
		}
	}()

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.UsingModel(a.model),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: annotation failed: %v", ErrModelUnavailable, err)
	}

	tokens := doc.Tokens()
	entities := doc.Entities()

	out := &Annotation{
		Tokens:   make([]Token, 0, len(tokens)),
		Entities: make([]Entity, 0, len(entities)),
	}
	for _, tok := range tokens {
		out.Tokens = append(out.Tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}
	for _, ent := range entities {
		out.Entities = append(out.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return out, nil
}

func (a *proseAnnotator) Name() string { return a.name }

// Check reports whether the model still annotates; used by readiness probes.
func (a *proseAnnotator) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ann, err := a.Annotate(warmupText)
	if err != nil {
		return err
	}
	if len(ann.Tokens) == 0 {
		return fmt.Errorf("%w: model produced no tokens", ErrModelUnavailable)
	}
	return nil
}
