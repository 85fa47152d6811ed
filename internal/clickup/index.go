package clickup

// IndexedTasks is the normalized result of one indexing pass: an id→name
// mapping per foreign entity kind, plus the tasks with every embedded
// entity stripped down to its name.
type IndexedTasks struct {
	Spaces   map[string]string `json:"spaces"`
	Users    map[string]string `json:"users"`
	Projects map[string]string `json:"projects"`
	Lists    map[string]string `json:"lists"`
	Folders  map[string]string `json:"folders"`
	Tasks    []StrippedTask    `json:"tasks"`
}

// StrippedTask is a task whose foreign entities have been replaced by
// names and whose users have been replaced by usernames.
type StrippedTask struct {
	ID          string   `json:"id"`
	CustomID    *string  `json:"custom_id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Status      string   `json:"status"`
	Creator     string   `json:"creator"`
	Assignees   []string `json:"assignees"`
	Watchers    []string `json:"watchers"`
	DateCreated *Millis  `json:"date_created,omitempty"`
	DateUpdated *Millis  `json:"date_updated,omitempty"`
	DateClosed  *Millis  `json:"date_closed,omitempty"`
	Project     string   `json:"project"`
	Folder      string   `json:"folder"`
	List        string   `json:"list"`
	Space       string   `json:"space,omitempty"`
}

// IndexTasks traverses a batch of tasks once, recording every embedded
// foreign entity into its id→name mapping and stripping the tasks down to
// name references. Pure function of its input: indices are rebuilt from
// scratch on every call. When the same id appears twice with different
// names, the last occurrence wins.
func IndexTasks(tasks []Task) IndexedTasks {
	result := IndexedTasks{
		Spaces:   map[string]string{},
		Users:    map[string]string{},
		Projects: map[string]string{},
		Lists:    map[string]string{},
		Folders:  map[string]string{},
		Tasks:    make([]StrippedTask, 0, len(tasks)),
	}

	recordUser := func(u User) string {
		result.Users[string(u.ID)] = u.Username
		return u.Username
	}

	for _, task := range tasks {
		result.Projects[string(task.Project.ID)] = task.Project.Name
		result.Folders[string(task.Folder.ID)] = task.Folder.Name
		result.Lists[string(task.List.ID)] = task.List.Name

		stripped := StrippedTask{
			ID:          task.ID,
			CustomID:    task.CustomID,
			Name:        task.Name,
			Description: task.Description,
			Status:      task.Status.Status,
			Creator:     recordUser(task.Creator),
			Assignees:   make([]string, 0, len(task.Assignees)),
			Watchers:    make([]string, 0, len(task.Watchers)),
			DateCreated: task.DateCreated,
			DateUpdated: task.DateUpdated,
			DateClosed:  task.DateClosed,
			Project:     task.Project.Name,
			Folder:      task.Folder.Name,
			List:        task.List.Name,
		}

		for _, assignee := range task.Assignees {
			stripped.Assignees = append(stripped.Assignees, recordUser(assignee))
		}
		for _, watcher := range task.Watchers {
			stripped.Watchers = append(stripped.Watchers, recordUser(watcher))
		}

		// Space is optional; a task without one skips the mapping update.
		if task.Space != nil {
			result.Spaces[string(task.Space.ID)] = task.Space.Name
			stripped.Space = task.Space.Name
		}

		result.Tasks = append(result.Tasks, stripped)
	}

	return result
}
