package definition

import (
	"fmt"

	"github.com/goliatone/go-f2f/pkg/compute"
	"github.com/goliatone/go-f2f/pkg/form"
)

// Mount creates every form of the set inside containerID, resolving each
// form's computation from registry.
func (s *Set) Mount(session *form.Session, containerID string, registry *compute.Registry) ([]*form.Form, error) {
	if session == nil || registry == nil {
		return nil, fmt.Errorf("definition: session and registry are required")
	}
	mounted := make([]*form.Form, 0, len(s.forms))
	for _, f := range s.forms {
		if f.Compute == "" {
			return nil, fmt.Errorf("definition: form %q has no computation", f.Group.Name())
		}
		fn, err := registry.Get(f.Compute)
		if err != nil {
			return nil, fmt.Errorf("definition: form %q: %w", f.Group.Name(), err)
		}
		created, err := session.CreateForm(containerID, f.Group, fn,
			form.WithClearOutput(f.ClearOutput),
			form.WithSubmitLabel(f.SubmitLabel),
		)
		if err != nil {
			return nil, err
		}
		mounted = append(mounted, created)
	}
	return mounted, nil
}
