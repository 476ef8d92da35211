// Package mocks provides centralized mock implementations for testing.
//
// Two flavours are offered. The Mock* types keep their data in memory and
// behave like a real store, including not-found and unknown-owner errors,
// which suits scenario tests. The TestifyMock* types are built on
// testify/mock for tests that need to inject a specific failure.
//
// Usage:
//
//	opener := mocks.NewMockOpener()
//	svc := service.NewTaskService(opener, logger)
//
//	// Inject a failure for one operation
//	tasks := new(mocks.TestifyMockTaskStore)
//	tasks.On("Get", mock.Anything, id).Return(domain.Task{}, errBoom)
//	opener.Tasks = tasks
package mocks
