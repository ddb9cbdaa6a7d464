// DO NOT EDIT
// Code generated automatically by github.com/efritz/go-mockgen
// $ go-mockgen github.com/lengxi-root/elainadb -o mock_test.go -i Conn -i Pool -i Lease

package elainadb

import time "time"

type MockConn struct {
	CloseFunc           func() error
	CloseFuncCallCount  int
	CloseFuncCallParams []ConnCloseParamSet
	PingFunc            func() error
	PingFuncCallCount   int
	PingFuncCallParams  []ConnPingParamSet
	QueryFunc           func(string, ...interface{}) ([]Row, error)
	QueryFuncCallCount  int
	QueryFuncCallParams []ConnQueryParamSet
	ExecFunc            func(string, ...interface{}) (int64, error)
	ExecFuncCallCount   int
	ExecFuncCallParams  []ConnExecParamSet
}
type ConnCloseParamSet struct{}
type ConnPingParamSet struct{}
type ConnQueryParamSet struct {
	Arg0 string
	Arg1 []interface{}
}
type ConnExecParamSet struct {
	Arg0 string
	Arg1 []interface{}
}

var _ Conn = NewMockConn()

func NewMockConn() *MockConn {
	m := &MockConn{}
	m.CloseFunc = m.defaultCloseFunc
	m.PingFunc = m.defaultPingFunc
	m.QueryFunc = m.defaultQueryFunc
	m.ExecFunc = m.defaultExecFunc
	return m
}
func (m *MockConn) Close() error {
	m.CloseFuncCallCount++
	m.CloseFuncCallParams = append(m.CloseFuncCallParams, ConnCloseParamSet{})
	return m.CloseFunc()
}
func (m *MockConn) Ping() error {
	m.PingFuncCallCount++
	m.PingFuncCallParams = append(m.PingFuncCallParams, ConnPingParamSet{})
	return m.PingFunc()
}
func (m *MockConn) Query(v0 string, v1 ...interface{}) ([]Row, error) {
	m.QueryFuncCallCount++
	m.QueryFuncCallParams = append(m.QueryFuncCallParams, ConnQueryParamSet{v0, v1})
	return m.QueryFunc(v0, v1...)
}
func (m *MockConn) Exec(v0 string, v1 ...interface{}) (int64, error) {
	m.ExecFuncCallCount++
	m.ExecFuncCallParams = append(m.ExecFuncCallParams, ConnExecParamSet{v0, v1})
	return m.ExecFunc(v0, v1...)
}
func (m *MockConn) defaultCloseFunc() error {
	return nil
}
func (m *MockConn) defaultPingFunc() error {
	return nil
}
func (m *MockConn) defaultQueryFunc(v0 string, v1 ...interface{}) ([]Row, error) {
	return nil, nil
}
func (m *MockConn) defaultExecFunc(v0 string, v1 ...interface{}) (int64, error) {
	return 0, nil
}

type MockLease struct {
	ConnFunc           func() Conn
	ConnFuncCallCount  int
	ConnFuncCallParams []LeaseConnParamSet
}
type LeaseConnParamSet struct{}

var _ Lease = NewMockLease()

func NewMockLease() *MockLease {
	m := &MockLease{}
	m.ConnFunc = m.defaultConnFunc
	return m
}
func (m *MockLease) Conn() Conn {
	m.ConnFuncCallCount++
	m.ConnFuncCallParams = append(m.ConnFuncCallParams, LeaseConnParamSet{})
	return m.ConnFunc()
}
func (m *MockLease) defaultConnFunc() Conn {
	return nil
}

type MockPool struct {
	CloseFunc                  func()
	CloseFuncCallCount         int
	CloseFuncCallParams        []PoolCloseParamSet
	AcquireFunc                func(time.Duration) (Lease, error)
	AcquireFuncCallCount       int
	AcquireFuncCallParams      []PoolAcquireParamSet
	AcquireAsyncFunc           func(time.Duration) <-chan AcquireResult
	AcquireAsyncFuncCallCount  int
	AcquireAsyncFuncCallParams []PoolAcquireAsyncParamSet
	ReleaseFunc                func(Lease)
	ReleaseFuncCallCount       int
	ReleaseFuncCallParams      []PoolReleaseParamSet
	StatsFunc                  func() Stats
	StatsFuncCallCount         int
	StatsFuncCallParams        []PoolStatsParamSet
}
type PoolCloseParamSet struct{}
type PoolAcquireParamSet struct {
	Arg0 time.Duration
}
type PoolAcquireAsyncParamSet struct {
	Arg0 time.Duration
}
type PoolReleaseParamSet struct {
	Arg0 Lease
}
type PoolStatsParamSet struct{}

var _ Pool = NewMockPool()

func NewMockPool() *MockPool {
	m := &MockPool{}
	m.CloseFunc = m.defaultCloseFunc
	m.AcquireFunc = m.defaultAcquireFunc
	m.AcquireAsyncFunc = m.defaultAcquireAsyncFunc
	m.ReleaseFunc = m.defaultReleaseFunc
	m.StatsFunc = m.defaultStatsFunc
	return m
}
func (m *MockPool) Close() {
	m.CloseFuncCallCount++
	m.CloseFuncCallParams = append(m.CloseFuncCallParams, PoolCloseParamSet{})
	m.CloseFunc()
}
func (m *MockPool) Acquire(v0 time.Duration) (Lease, error) {
	m.AcquireFuncCallCount++
	m.AcquireFuncCallParams = append(m.AcquireFuncCallParams, PoolAcquireParamSet{v0})
	return m.AcquireFunc(v0)
}
func (m *MockPool) AcquireAsync(v0 time.Duration) <-chan AcquireResult {
	m.AcquireAsyncFuncCallCount++
	m.AcquireAsyncFuncCallParams = append(m.AcquireAsyncFuncCallParams, PoolAcquireAsyncParamSet{v0})
	return m.AcquireAsyncFunc(v0)
}
func (m *MockPool) Release(v0 Lease) {
	m.ReleaseFuncCallCount++
	m.ReleaseFuncCallParams = append(m.ReleaseFuncCallParams, PoolReleaseParamSet{v0})
	m.ReleaseFunc(v0)
}
func (m *MockPool) Stats() Stats {
	m.StatsFuncCallCount++
	m.StatsFuncCallParams = append(m.StatsFuncCallParams, PoolStatsParamSet{})
	return m.StatsFunc()
}
func (m *MockPool) defaultCloseFunc() {
}
func (m *MockPool) defaultAcquireFunc(v0 time.Duration) (Lease, error) {
	return nil, nil
}
func (m *MockPool) defaultAcquireAsyncFunc(v0 time.Duration) <-chan AcquireResult {
	return nil
}
func (m *MockPool) defaultReleaseFunc(v0 Lease) {
}
func (m *MockPool) defaultStatsFunc() Stats {
	return Stats{}
}
