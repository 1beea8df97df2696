package core

// Agent is one conversational agent variant under evaluation
type Agent struct {
	ID   AgentID
	Name string
}
