package orchestrator

import "github.com/dusk-indust/ideate/internal/domain"

// CreateSubtasks derives domain-specific subtasks from an idea's
// keywords. The trigger table is deliberately small: "technical" pulls
// in a technology feasibility pass, "market" a business market pass.
func CreateSubtasks(idea *domain.Idea) []domain.SubTask {
	var subtasks []domain.SubTask

	for _, keyword := range idea.Keywords {
		switch keyword {
		case "technical":
			subtasks = append(subtasks, domain.SubTask{
				Domain:  domain.Technology,
				Task:    "Technical feasibility analysis",
				Context: map[string]string{"focus": "feasibility"},
			})
		case "market":
			subtasks = append(subtasks, domain.SubTask{
				Domain:  domain.Business,
				Task:    "Market analysis",
				Context: map[string]string{"focus": "market"},
			})
		}
	}

	return subtasks
}

// SupportingDomains extracts the distinct subtask domains, excluding
// the primary.
func SupportingDomains(subtasks []domain.SubTask, primary domain.Type) []domain.Type {
	seen := map[domain.Type]bool{primary: true}
	var out []domain.Type
	for _, st := range subtasks {
		if seen[st.Domain] {
			continue
		}
		seen[st.Domain] = true
		out = append(out, st.Domain)
	}
	return out
}
