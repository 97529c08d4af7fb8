package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cours-de-latin/draconic"
	"github.com/cours-de-latin/draconic/internal/store"
)

// ---- JSON response types ------------------------------------------------

type spanJSON struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

type classificationJSON struct {
	Word     string   `json:"word"`
	Display  string   `json:"display"`
	Verdict  string   `json:"verdict"`
	Valid    bool     `json:"valid"`
	RootWord string   `json:"root_word"`
	Span     spanJSON `json:"span"`
	Ranks    []int    `json:"ranks"`
	// Categories names the category of each syllable.
	Categories []string `json:"categories"`
}

type categoryJSON struct {
	Rank int    `json:"rank"`
	Name string `json:"name"`
	Root bool   `json:"root,omitempty"`
	Flag bool   `json:"flag,omitempty"`
}

type categoriesResponse struct {
	Boundary   string         `json:"boundary"`
	Categories []categoryJSON `json:"categories"`
}

type syllablesResponse struct {
	Pool      string   `json:"pool"`
	Syllables []string `json:"syllables"`
}

type syllableResponse struct {
	Syllable string `json:"syllable"`
	Display  string `json:"display"`
	Taken    bool   `json:"taken"`
}

type wordSummaryJSON struct {
	Word    string `json:"word"`
	Display string `json:"display"`
}

type wordsResponse struct {
	Words []wordSummaryJSON `json:"words"`
}

type wordResponse struct {
	ID         string     `json:"id,omitempty"`
	Word       string     `json:"word"`
	Display    string     `json:"display"`
	Definition string     `json:"definition"`
	Tags       []string   `json:"tags"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

type tagResponse struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type errorResponse struct {
	Error          string              `json:"error"`
	Invalid        []string            `json:"invalid_syllables,omitempty"`
	Classification *classificationJSON `json:"classification,omitempty"`
}

// ---- helpers ------------------------------------------------------------

func toClassificationJSON(order *draconic.AffixOrder, c draconic.Classification) classificationJSON {
	cats := make([]string, len(c.Ranks))
	for i, r := range c.Ranks {
		cats[i] = order.Name(r)
	}
	return classificationJSON{
		Word:       c.Word,
		Display:    draconic.Display(c.Word),
		Verdict:    string(c.Verdict),
		Valid:      c.Verdict.Valid(),
		RootWord:   c.RootWord,
		Span:       spanJSON{Lo: c.Span.Lo, Hi: c.Span.Hi},
		Ranks:      c.Ranks,
		Categories: cats,
	}
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func (a *app) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Warn("Encode response failed", "error", err)
	}
}

func (a *app) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, errorResponse{Error: msg})
}

// fail maps a lexicon or store error to an HTTP response.
func (a *app) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		rejected *draconic.RejectedError
		invalid  *draconic.InvalidSyllablesError
	)
	switch {
	case errors.As(err, &rejected):
		cj := toClassificationJSON(a.lex.Classifier().Order(), rejected.Classification)
		a.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Classification: &cj})
	case errors.As(err, &invalid):
		a.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Invalid: invalid.Syllables})
	case errors.Is(err, draconic.ErrInvalidWord),
		errors.Is(err, draconic.ErrEmptyTag),
		errors.Is(err, draconic.ErrUnknownPool),
		errors.Is(err, draconic.ErrUnknownSyllable):
		a.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, draconic.ErrUnknownWord),
		errors.Is(err, draconic.ErrUnknownTag),
		errors.Is(err, draconic.ErrEmptyPool):
		a.writeError(w, http.StatusNotFound, err.Error())
	default:
		a.log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		a.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decode reads a JSON body into v, answering 400 on failure.
func (a *app) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.writeError(w, http.StatusBadRequest, "body must be valid JSON")
		return false
	}
	return true
}

// commit persists after a mutation and reports whether the caller may
// write its success response.
func (a *app) commit(w http.ResponseWriter, r *http.Request) bool {
	if err := a.persist(r.Context()); err != nil {
		a.fail(w, r, err)
		return false
	}
	return true
}

// ---- classification -----------------------------------------------------

func handleCheck(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word := r.URL.Query().Get("word")
		if word == "" {
			a.writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		c, err := a.lex.Check(word)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		a.metrics.observe("check", c.Verdict)
		a.writeJSON(w, http.StatusOK, toClassificationJSON(a.lex.Classifier().Order(), c))
	}
}

func handleCategories(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order := a.lex.Classifier().Order()
		out := make([]categoryJSON, order.Len())
		for i := range out {
			out[i] = categoryJSON{
				Rank: i,
				Name: order.Name(i),
				Root: i == order.RootRank(),
				Flag: order.IsFlag(i),
			}
		}
		a.writeJSON(w, http.StatusOK, categoriesResponse{
			Boundary:   a.lex.Classifier().Boundary(),
			Categories: out,
		})
	}
}

// ---- syllables ----------------------------------------------------------

func handleSyllables(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := draconic.ParsePool(r.URL.Query().Get("pool"))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		syls := a.lex.Syllables(pool, draconic.Clean(r.URL.Query().Get("q")))
		a.writeJSON(w, http.StatusOK, syllablesResponse{Pool: string(pool), Syllables: nonNil(syls)})
	}
}

func handleRandomSyllable(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := draconic.ParsePool(r.URL.Query().Get("pool"))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		s, err := a.lex.Random(pool)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		a.writeJSON(w, http.StatusOK, syllableResponse{Syllable: s, Display: draconic.Display(s), Taken: a.lex.IsTaken(s)})
	}
}

func handleClaim(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Syllable   string `json:"syllable"`
			Definition string `json:"definition"`
		}
		if !a.decode(w, r, &body) {
			return
		}
		if err := a.lex.Claim(body.Syllable, body.Definition); err != nil {
			a.fail(w, r, err)
			return
		}
		if !a.commit(w, r) {
			return
		}
		s := draconic.Clean(body.Syllable)
		a.writeJSON(w, http.StatusOK, syllableResponse{Syllable: s, Display: draconic.Display(s), Taken: true})
	}
}

func handleRelease(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Syllable string `json:"syllable"`
		}
		if !a.decode(w, r, &body) {
			return
		}
		if err := a.lex.Release(body.Syllable); err != nil {
			a.fail(w, r, err)
			return
		}
		if !a.commit(w, r) {
			return
		}
		s := draconic.Clean(body.Syllable)
		a.writeJSON(w, http.StatusOK, syllableResponse{Syllable: s, Display: draconic.Display(s)})
	}
}

// ---- words --------------------------------------------------------------

func handleListWords(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		words := a.lex.Words(r.URL.Query().Get("q"))
		out := make([]wordSummaryJSON, 0, len(words))
		for _, word := range words {
			out = append(out, wordSummaryJSON{Word: word, Display: draconic.Display(word)})
		}
		a.writeJSON(w, http.StatusOK, wordsResponse{Words: out})
	}
}

func handleGetWord(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := a.lex.Lookup(r.PathValue("word"))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		resp := wordResponse{
			Word:       e.Word,
			Display:    draconic.Display(e.Word),
			Definition: e.Definition,
			Tags:       nonNil(e.Tags),
		}
		rec, err := a.store.Entry(r.Context(), e.Word)
		switch {
		case err == nil:
			resp.ID = rec.ID
			resp.UpdatedAt = &rec.UpdatedAt
		case !errors.Is(err, store.ErrNotFound):
			a.log.Warn("Entry metadata unavailable", "word", e.Word, "error", err)
		}
		a.writeJSON(w, http.StatusOK, resp)
	}
}

func handleAddWord(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Word       string `json:"word"`
			Definition string `json:"definition"`
		}
		if !a.decode(w, r, &body) {
			return
		}
		c, err := a.lex.AddWord(body.Word, body.Definition)
		if c.Verdict != "" {
			a.metrics.observe("add", c.Verdict)
		}
		if err != nil {
			a.fail(w, r, err)
			return
		}
		if !a.commit(w, r) {
			return
		}
		a.log.Info("Word added", "word", c.Word, "verdict", c.Verdict, "root", c.RootWord)
		a.writeJSON(w, http.StatusCreated, toClassificationJSON(a.lex.Classifier().Order(), c))
	}
}

func handleDefineWord(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Definition string `json:"definition"`
		}
		if !a.decode(w, r, &body) {
			return
		}
		word := draconic.Clean(r.PathValue("word"))
		if err := a.lex.Define(word, body.Definition); err != nil {
			a.fail(w, r, err)
			return
		}
		if !a.commit(w, r) {
			return
		}
		e, err := a.lex.Lookup(word)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		a.writeJSON(w, http.StatusOK, wordResponse{
			Word:       e.Word,
			Display:    draconic.Display(e.Word),
			Definition: e.Definition,
			Tags:       nonNil(e.Tags),
		})
	}
}

func handleDeleteWord(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.lex.DeleteWord(r.PathValue("word")); err != nil {
			a.fail(w, r, err)
			return
		}
		if !a.commit(w, r) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ---- tags ---------------------------------------------------------------

func handleListTags(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.writeJSON(w, http.StatusOK, tagsResponse{Tags: nonNil(a.lex.Tags(r.URL.Query().Get("q")))})
	}
}

func handleGetTag(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.PathValue("name"))
		if !a.lex.HasTag(name) {
			a.fail(w, r, draconic.ErrUnknownTag)
			return
		}
		a.writeJSON(w, http.StatusOK, tagResponse{Name: name, Members: nonNil(a.lex.SyllablesFor(name))})
	}
}

func handleCreateTag(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if !a.decode(w, r, &body) {
			return
		}
		name := strings.TrimSpace(body.Name)
		if err := a.lex.CreateTag(name); err != nil {
			a.fail(w, r, err)
			return
		}
		if !a.commit(w, r) {
			return
		}
		a.writeJSON(w, http.StatusCreated, tagResponse{Name: name, Members: nonNil(a.lex.SyllablesFor(name))})
	}
}

func handleDeleteTag(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.lex.DeleteTag(r.PathValue("name")); err != nil {
			a.fail(w, r, err)
			return
		}
		if !a.commit(w, r) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleAssignTag(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Member string `json:"member"`
		}
		if !a.decode(w, r, &body) {
			return
		}
		name := strings.TrimSpace(r.PathValue("name"))
		if err := a.lex.AssignTag(name, body.Member); err != nil {
			a.fail(w, r, err)
			return
		}
		if !a.commit(w, r) {
			return
		}
		a.writeJSON(w, http.StatusOK, tagResponse{Name: name, Members: nonNil(a.lex.SyllablesFor(name))})
	}
}

func handleUnassignTag(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.PathValue("name"))
		if err := a.lex.UnassignTag(name, r.PathValue("member")); err != nil {
			a.fail(w, r, err)
			return
		}
		if !a.commit(w, r) {
			return
		}
		a.writeJSON(w, http.StatusOK, tagResponse{Name: name, Members: nonNil(a.lex.SyllablesFor(name))})
	}
}
