// Package domain contains the entity model of the task list: tasks, users,
// their default values, validation rules, and the partial-update merge used
// by PATCH requests. It has no knowledge of storage or transport.
package domain
