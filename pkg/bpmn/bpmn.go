// Package bpmn extracts the one artifact this system needs from a BPMN
// process model: the bidirectional map between activity display names and
// BPMN node identifiers. Everything else in the document is ignored.
package bpmn

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// ActivityMap maps activity display names to BPMN node ids and back.
type ActivityMap struct {
	idByName map[string]string
	nameByID map[string]string
}

// IDByName returns the node id of an activity name.
func (m *ActivityMap) IDByName(name string) (string, bool) {
	id, ok := m.idByName[name]
	return id, ok
}

// NameByID returns the display name of a node id.
func (m *ActivityMap) NameByID(id string) (string, bool) {
	name, ok := m.nameByID[id]
	return name, ok
}

// Len returns the number of mapped activities.
func (m *ActivityMap) Len() int {
	return len(m.nameByID)
}

// ParseActivities reads a BPMN document and collects the id and name of
// every task element (task, userTask, serviceTask, ...).
func ParseActivities(r io.Reader) (*ActivityMap, error) {
	m := &ActivityMap{
		idByName: map[string]string{},
		nameByID: map[string]string{},
	}
	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse BPMN document: %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok || !isTaskElement(start.Name.Local) {
			continue
		}
		var id, name string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "id":
				id = attr.Value
			case "name":
				name = attr.Value
			}
		}
		if id == "" || name == "" {
			continue
		}
		m.idByName[name] = id
		m.nameByID[id] = name
	}
	return m, nil
}

// ParseActivitiesFile is ParseActivities over a file path.
func ParseActivitiesFile(path string) (*ActivityMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open BPMN document: %w", err)
	}
	defer f.Close()
	return ParseActivities(f)
}

func isTaskElement(local string) bool {
	return local == "task" || strings.HasSuffix(local, "Task")
}
