// Package group implements bounded multi-agent group coordination: a
// shared blackboard and formation id per group, member roster management,
// and auto-destroy on the last member's death (spec.md §4.11).
package group

import (
	"sync/atomic"

	"github.com/jihwankim/roguelike-ai-core/pkg/aierr"
	"github.com/jihwankim/roguelike-ai-core/pkg/blackboard"
	"github.com/jihwankim/roguelike-ai-core/pkg/logging"
)

// MaxMembers is the bounded roster size spec.md §4.11 requires ("a
// bounded set (≤16) of agent ids").
const MaxMembers = 16

// ID uniquely identifies a live group. The zero value is never issued by
// Create.
type ID uint64

var nextID uint64

// Group is a shared blackboard plus a member roster and formation id.
// Coordination writes (center position, member count, formation id) are
// intended to come only from a designated leader; any member may read
// the shared blackboard (spec.md §5 "Shared resources").
type Group struct {
	id         ID
	formation  int32
	members    []uint64
	bb         *blackboard.Blackboard
}

// Manager owns the set of live groups. A host creates one Manager for
// the whole AI world, matching DESIGN NOTES §9's "explicit context
// struct, not global state" guidance.
type Manager struct {
	groups map[ID]*Group
	bbCap  int
	log    *logging.Logger
}

// NewManager creates an empty Manager whose group blackboards are
// bounded at bbCapacity entries.
func NewManager(bbCapacity int, log *logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{groups: make(map[ID]*Group), bbCap: bbCapacity, log: log}
}

// Create allocates a new group with the given initial members (truncated
// silently at MaxMembers — callers exceeding it get a smaller-than-
// requested roster rather than an error, matching the blackboard's own
// "capacity exhaustion fails silently" contract) and formation id. It
// returns the new group's unique non-zero id.
func (m *Manager) Create(formation int32, initialMembers []uint64) ID {
	id := ID(atomic.AddUint64(&nextID, 1))
	members := make([]uint64, 0, MaxMembers)
	for _, mid := range initialMembers {
		if len(members) >= MaxMembers {
			break
		}
		members = append(members, mid)
	}
	g := &Group{
		id:        id,
		formation: formation,
		members:   members,
		bb:        blackboard.New(m.bbCap),
	}
	m.groups[id] = g
	m.log.Debug("group created", "group_id", uint64(id), "formation", formation, "members", len(members))
	return id
}

// Get returns the group for id, or nil if it does not exist (already
// destroyed or never created).
func (m *Manager) Get(id ID) *Group {
	return m.groups[id]
}

// Destroy frees id's shared blackboard and removes it from the Manager.
// Destroying an unknown id is a no-op.
func (m *Manager) Destroy(id ID) {
	if _, ok := m.groups[id]; !ok {
		return
	}
	delete(m.groups, id)
	m.log.Debug("group destroyed", "group_id", uint64(id))
}

// AddMember appends agentID to id's roster. Returns ErrCapacityExhausted
// if the group is already at MaxMembers, or ErrNotFound if id does not
// exist.
func (m *Manager) AddMember(id ID, agentID uint64) error {
	g, ok := m.groups[id]
	if !ok {
		return aierr.ErrNotFound
	}
	if len(g.members) >= MaxMembers {
		return aierr.ErrCapacityExhausted
	}
	g.members = append(g.members, agentID)
	return nil
}

// RemoveMember removes agentID from id's roster. If the roster becomes
// empty, the group is auto-destroyed (spec.md §4.11 "if emptied,
// auto-destroy"). Removing from an unknown group or an absent member is
// a no-op.
func (m *Manager) RemoveMember(id ID, agentID uint64) {
	g, ok := m.groups[id]
	if !ok {
		return
	}
	for i, mid := range g.members {
		if mid == agentID {
			g.members = append(g.members[:i], g.members[i+1:]...)
			break
		}
	}
	if len(g.members) == 0 {
		m.Destroy(id)
	}
}

// ID returns the group's id.
func (g *Group) ID() ID { return g.id }

// Formation returns the group's formation id.
func (g *Group) Formation() int32 { return g.formation }

// Members returns the live member roster, in join order.
func (g *Group) Members() []uint64 {
	out := make([]uint64, len(g.members))
	copy(out, g.members)
	return out
}

// Blackboard returns the group's shared blackboard.
func (g *Group) Blackboard() *blackboard.Blackboard { return g.bb }

// Keys the coordination update writes on a group's shared blackboard.
const (
	KeyCenterPos    = "group_center_pos"
	KeyMemberCount  = "group_member_count"
	KeyFormationID  = "group_formation_id"
)

// CoordinateUpdate refreshes the group-scoped keys spec.md §4.11 names
// (center position, member count, formation id) on the shared
// blackboard. centerPos is supplied by the caller (typically computed by
// the designated leader from member positions); this keeps Group itself
// ignorant of per-member position storage, which lives in each member's
// own agent state.
func (g *Group) CoordinateUpdate(centerPos blackboard.Vec2) {
	g.bb.SetVec2(KeyCenterPos, centerPos)
	g.bb.SetInt(KeyMemberCount, int32(len(g.members)))
	g.bb.SetInt(KeyFormationID, g.formation)
}
