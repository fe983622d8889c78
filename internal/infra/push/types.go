package push

import "time"

type NotificationTask struct {
	UserID string `json:"-"`
	// Name identifies the task in the queue; a repeated name is a duplicate.
	Name string `json:"-"`

	Tokens []string `json:"tokens"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Type   string   `json:"notification_type"`
}

type TaskResponse struct {
	Name       string    `json:"name"`
	CreateTime time.Time `json:"create_time"`
	Duplicate  bool      `json:"duplicate"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name        string             `json:"name,omitempty"`
	HTTPRequest PrimindHTTPRequest `json:"httpRequest"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name       string `json:"name"`
	CreateTime string `json:"createTime"`
}
