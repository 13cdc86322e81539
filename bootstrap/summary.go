package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/skillsenselab/yumlsvg/component"
)

// Summary tracks and displays the application bootstrap process. Component
// details and routes are collected from the registry at display time, so
// components self-report through the Describable and RouteProvider
// interfaces instead of being tracked manually.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	notes           []string
	out             io.Writer
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		out:         os.Stdout,
	}
}

// SetOutput redirects the summary, e.g. to stderr when stdout carries the
// program's result.
func (s *Summary) SetOutput(w io.Writer) {
	s.out = w
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// AddNote appends a free-form line to the summary output.
func (s *Summary) AddNote(note string) {
	s.notes = append(s.notes, note)
}

// Display prints the bootstrap summary including live health from the registry.
func (s *Summary) Display(registry *component.Registry) {
	fmt.Fprintf(s.out, "\n%s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	var components []component.Component
	var routes []component.Route
	if registry != nil {
		components = registry.All()
		for _, c := range components {
			if rp, ok := c.(component.RouteProvider); ok {
				routes = append(routes, rp.Routes()...)
			}
		}
	}

	if len(components) > 0 {
		fmt.Fprintf(s.out, "Components\n")
		for i, c := range components {
			prefix := "├──"
			if i == len(components)-1 {
				prefix = "└──"
			}
			name := c.Name()
			details := ""
			if d, ok := c.(component.Describable); ok {
				desc := d.Describe()
				if desc.Name != "" {
					name = desc.Name
				}
				details = desc.Details
				if desc.Port > 0 {
					details = fmt.Sprintf("%s (:%d)", details, desc.Port)
				}
			}
			if details != "" {
				fmt.Fprintf(s.out, "   %s %s: %s\n", prefix, name, details)
			} else {
				fmt.Fprintf(s.out, "   %s %s\n", prefix, name)
			}
		}
		fmt.Fprintf(s.out, "\n")
	}

	if len(routes) > 0 {
		fmt.Fprintf(s.out, "Routes (%d)\n", len(routes))
		for i, r := range routes {
			prefix := "├──"
			if i == len(routes)-1 {
				prefix = "└──"
			}
			fmt.Fprintf(s.out, "   %s %-7s %s -> %s\n", prefix, r.Method, r.Path, r.Handler)
		}
		fmt.Fprintf(s.out, "\n")
	}

	if registry != nil {
		results := registry.HealthAll(context.Background())
		if len(results) > 0 {
			fmt.Fprintf(s.out, "Health\n")
			healthy := 0
			for i, h := range results {
				prefix := "├──"
				if i == len(results)-1 {
					prefix = "└──"
				}
				msg := ""
				if h.Message != "" {
					msg = fmt.Sprintf(" (%s)", h.Message)
				}
				fmt.Fprintf(s.out, "   %s %s: %s%s\n", prefix, h.Name, strings.ToLower(string(h.Status)), msg)
				if h.Status == component.StatusHealthy {
					healthy++
				}
			}
			if healthy == len(results) {
				fmt.Fprintf(s.out, "\nAll components healthy (%d/%d)\n", healthy, len(results))
			} else {
				fmt.Fprintf(s.out, "\nSome components have issues (%d/%d healthy)\n", healthy, len(results))
			}
		}
	}

	for _, n := range s.notes {
		fmt.Fprintf(s.out, "%s\n", n)
	}

	fmt.Fprintf(s.out, "\n")
}
