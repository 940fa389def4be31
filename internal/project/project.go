// Package project coordinates the configuration, the folder index and the
// name engine into the user-facing operations: folder creation, project
// validation, next-number suggestion and transfer. Surfacing policy lives
// here — the core returns findings as data and this layer decides whether a
// non-empty list aborts the operation.
package project

import (
	"errors"
	"strings"
	"time"

	"nbshuttle/internal/audit"
	"nbshuttle/internal/config"
	"nbshuttle/internal/folders"
	"nbshuttle/internal/formatter"
	"nbshuttle/internal/index"
	"nbshuttle/internal/names"
	"nbshuttle/internal/suggest"
	"nbshuttle/internal/transfer"
	"nbshuttle/internal/validate"
)

// Project is one opened nbshuttle project.
type Project struct {
	Root   string
	Cfg    *config.Config
	Events *audit.Writer

	// Clock supplies the batch timestamp for tag expansion; nil means the
	// wall clock. Tests pin it.
	Clock func() time.Time
}

// Open loads (or defaults) the configuration of the project rooted at root.
func Open(root string) (*Project, error) {
	cfg, err := config.LoadOrCreate(root)
	if err != nil {
		return nil, err
	}
	return &Project{
		Root:   root,
		Cfg:    cfg,
		Events: audit.NewWriter(config.AuditPath(root)),
	}, nil
}

// centralStore returns a Lister for the central copy of the project, or nil
// when the central store is not reachable as a filesystem. SSH-backed
// listing is handled by the transfer tool, not by the index.
func (p *Project) centralStore(top names.TopLevel) index.Lister {
	if p.Cfg.ConnectionMethod == config.MethodLocalFilesystem && p.Cfg.CentralPath != "" {
		return index.NewLocalStore(p.Cfg.CentralPath, top)
	}
	return nil
}

// listers maps each scope to its store, omitting unavailable scopes.
func (p *Project) listers(top names.TopLevel) map[validate.Scope]index.Lister {
	m := map[validate.Scope]index.Lister{
		validate.ScopeLocal: index.NewLocalStore(p.Cfg.LocalPath, top),
	}
	if central := p.centralStore(top); central != nil {
		m[validate.ScopeCentral] = central
	}
	return m
}

// CreateOptions configures a folder-creation call.
type CreateOptions struct {
	Top       names.TopLevel
	Datatypes []string
	// BypassValidation creates the folders even when validation found
	// problems. The core itself has no bypass concept; ignoring findings
	// is this layer's decision, made explicit by the caller.
	BypassValidation bool
	// Scopes to validate against; defaults to local only.
	Scopes []validate.Scope
}

// CreateFolders formats, validates and creates subject (and optionally
// session and datatype) folders. When validation fails and no bypass was
// requested, nothing at all is created. The created paths are returned.
func (p *Project) CreateFolders(subs, sess []string, opts CreateOptions) ([]string, []names.Error, error) {
	top := opts.Top
	if top == "" {
		top = names.RawData
	}

	fmtSubs, err := formatter.FormatNames(subs, names.Sub, p.Clock)
	if err != nil {
		return nil, nil, err
	}
	var fmtSess []string
	if len(sess) > 0 {
		fmtSess, err = formatter.FormatNames(sess, names.Ses, p.Clock)
		if err != nil {
			return nil, nil, err
		}
	}

	sel, err := folders.ResolveSelector(opts.Datatypes)
	if err != nil {
		return nil, nil, err
	}

	existing, err := p.existingNames(top, opts.Scopes)
	if err != nil {
		return nil, nil, err
	}

	findings := validate.ValidateAgainstProject(existing, fmtSubs, fmtSess, validate.ProjectOptions{
		Scopes:    opts.Scopes,
		Templates: p.Cfg.NameTemplates.Core(),
	})
	if len(findings) > 0 && !opts.BypassValidation {
		return nil, findings, errors.New("validation failed; no folders were created")
	}

	plan := folders.BuildPlan(p.Cfg.LocalPath, top, fmtSubs, fmtSess, sel)
	if err := plan.Execute(); err != nil {
		return nil, findings, err
	}

	_ = p.Events.Append(audit.Event{
		RunID: audit.NewRunID(),
		Type:  audit.EventFolderCreate,
		Paths: plan.Paths,
	})
	return plan.Paths, findings, nil
}

// existingNames gathers the project's existing names for the requested
// scopes. A missing top-level folder means an empty project, not a failure:
// the first create call of a fresh project has nothing to collide with.
func (p *Project) existingNames(top names.TopLevel, scopes []validate.Scope) (validate.ProjectNames, error) {
	if len(scopes) == 0 {
		scopes = []validate.Scope{validate.ScopeLocal}
	}
	existing, err := index.BuildProjectNames(p.listers(top), scopes)
	if err != nil {
		var verr *names.Error
		if errors.As(err, &verr) && verr.Kind == names.MissingTopLevelFolder {
			return validate.ProjectNames{
				Sub: map[validate.Scope][]names.Ref{},
				Ses: map[validate.Scope]map[string][]names.Ref{},
			}, nil
		}
		return existing, err
	}
	return existing, nil
}

// ValidateProject validates the whole project tree of every requested scope
// and returns all findings. A missing top-level folder is itself a finding.
func (p *Project) ValidateProject(top names.TopLevel, scopes []validate.Scope, strict bool) ([]names.Error, error) {
	if top == "" {
		top = names.RawData
	}
	if len(scopes) == 0 {
		scopes = []validate.Scope{validate.ScopeLocal}
	}

	var findings []names.Error
	listers := p.listers(top)
	for _, scope := range scopes {
		lister, ok := listers[scope]
		if !ok {
			continue
		}
		store, ok := lister.(*index.LocalStore)
		if !ok {
			continue
		}
		tree, err := store.Tree()
		if err != nil {
			var verr *names.Error
			if errors.As(err, &verr) {
				findings = append(findings, *verr)
				continue
			}
			return findings, err
		}
		findings = append(findings, validate.ValidateTree(tree, validate.TreeOptions{
			Templates: p.Cfg.NameTemplates.Core(),
			Strict:    strict,
		})...)
	}
	return findings, nil
}

// NextSub suggests the next free subject number across the local and (when
// reachable) central copies of the project.
func (p *Project) NextSub(top names.TopLevel) (suggest.Suggestion, error) {
	existing, err := p.existingNames(top, p.availableScopes())
	if err != nil {
		return suggest.Suggestion{}, err
	}
	var pool []string
	for _, refs := range existing.Sub {
		for _, ref := range refs {
			pool = append(pool, ref.Name)
		}
	}
	return suggest.NextNumber(pool, names.Sub, suggest.Options{
		TemplateRegexp: p.templateFor(names.Sub),
		IncludePrefix:  true,
	})
}

// NextSes suggests the next free session number for one subject.
func (p *Project) NextSes(top names.TopLevel, subject string) (suggest.Suggestion, error) {
	existing, err := p.existingNames(top, p.availableScopes())
	if err != nil {
		return suggest.Suggestion{}, err
	}
	var pool []string
	for _, perSub := range existing.Ses {
		for _, ref := range perSub[subject] {
			pool = append(pool, ref.Name)
		}
	}
	return suggest.NextNumber(pool, names.Ses, suggest.Options{
		TemplateRegexp: p.templateFor(names.Ses),
		IncludePrefix:  true,
	})
}

// availableScopes returns local plus central when the central store can be
// listed directly.
func (p *Project) availableScopes() []validate.Scope {
	scopes := []validate.Scope{validate.ScopeLocal}
	if p.centralStore(names.RawData) != nil {
		scopes = append(scopes, validate.ScopeCentral)
	}
	return scopes
}

// templateFor returns the enabled template regexp for the prefix, or "".
func (p *Project) templateFor(prefix names.Prefix) string {
	if !p.Cfg.NameTemplates.On {
		return ""
	}
	if prefix == names.Sub {
		return p.Cfg.NameTemplates.Sub
	}
	return p.Cfg.NameTemplates.Ses
}

// Transfer runs an rclone invocation for the request and records it.
func (p *Project) Transfer(r transfer.Runner, req transfer.Request) (transfer.Result, error) {
	if req.Top == "" {
		req.Top = names.RawData
	}
	res, err := transfer.Transfer(r, p.Cfg, req)
	if err != nil {
		return res, err
	}
	_ = p.Events.Append(audit.Event{
		RunID:  res.RunID,
		Type:   audit.EventTransfer,
		Detail: "rclone " + strings.Join(res.Args, " "),
	})
	return res, nil
}
