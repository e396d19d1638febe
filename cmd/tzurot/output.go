package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/lbds137/tzurot/internal/model"
	"github.com/lbds137/tzurot/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printResolved(p *model.ResolvedPersonality) {
	fmt.Printf("ID:          %s\n", ui.RenderID(p.ID))
	fmt.Printf("Name:        %s\n", ui.RenderName(p.Name))
	fmt.Printf("Slug:        %s\n", p.Slug)
	fmt.Printf("Visibility:  %s\n", visibility(p.Public))
	if p.OwnerID != "" {
		fmt.Printf("Owner:       %s\n", p.OwnerID)
	}
	if p.AvatarURL != "" {
		fmt.Printf("Avatar:      %s\n", ui.RenderMuted(p.AvatarURL))
	}
	fmt.Printf("Created At:  %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated At:  %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))

	fmt.Println()
	fmt.Println("Effective config:")
	fmt.Printf("  model:        %s\n", p.Config.Model)
	fmt.Printf("  temperature:  %g\n", p.Config.Temperature)
	printOptInt("  max_tokens", p.Config.MaxTokens)
	printOptFloat("  top_p", p.Config.TopP)
	printOptInt("  top_k", p.Config.TopK)
	printOptFloat("  frequency_penalty", p.Config.FrequencyPenalty)
	printOptFloat("  presence_penalty", p.Config.PresencePenalty)
	printOptInt("  memory_limit", p.Config.MemoryLimit)
	printOptInt("  context_window", p.Config.ContextWindow)

	if p.Character.SystemPrompt != nil {
		fmt.Println()
		fmt.Println("System prompt:")
		fmt.Println(ui.RenderMuted(*p.Character.SystemPrompt))
	}
}

func printRoster(all []*model.ResolvedPersonality) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSLUG\tVISIBILITY\tMODEL")
	for _, p := range all {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Slug, visibility(p.Public), p.Config.Model)
	}
	w.Flush()
	fmt.Printf("\n%d personalities\n", len(all))
}

func visibility(public bool) string {
	if public {
		return "public"
	}
	return ui.RenderWarning("private")
}

func printOptInt(label string, v *int) {
	if v != nil {
		fmt.Printf("%s: %d\n", label, *v)
	}
}

func printOptFloat(label string, v *float64) {
	if v != nil {
		fmt.Printf("%s: %g\n", label, *v)
	}
}

// redactURL strips credentials from a connection URL for display.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
