package sema

import "github.com/emberlang/ember/types"

// branchFrame is one entry of temporaryIfBranchTypeInformation (§3): a
// map from a refinement key to the list of candidate types an
// `instanceof` check has narrowed it to within the enclosing branch.
type branchFrame map[any][]*types.Type

// pushBranchFrame enters an if-branch or ternary true-branch (§4.F).
func (c *Checker) pushBranchFrame() {
	c.ifBranchFrames = append(c.ifBranchFrames, branchFrame{})
}

// popBranchFrame exits the branch, discarding its refinements.
func (c *Checker) popBranchFrame() {
	c.ifBranchFrames = c.ifBranchFrames[:len(c.ifBranchFrames)-1]
}

// currentBranchFrame returns the innermost live refinement frame, or nil
// if none is active.
func (c *Checker) currentBranchFrame() branchFrame {
	if len(c.ifBranchFrames) == 0 {
		return nil
	}
	return c.ifBranchFrames[len(c.ifBranchFrames)-1]
}

// refine records that key has been narrowed to candidate inside the
// current branch frame, if one is live.
func (c *Checker) refine(key any, candidate *types.Type) {
	frame := c.currentBranchFrame()
	if frame == nil {
		return
	}
	frame[key] = append(frame[key], candidate)
}

// refinedCandidates returns every candidate type instanceof-narrowed for
// key across all live frames, most specific (innermost) first.
func (c *Checker) refinedCandidates(key any) []*types.Type {
	var out []*types.Type
	for i := len(c.ifBranchFrames) - 1; i >= 0; i-- {
		out = append(out, c.ifBranchFrames[i][key]...)
	}
	return out
}

// assignmentTracker is one frame of ifElseForWhileAssignmentTracker (§3):
// collects every type ever assigned to a variable within the enclosing
// conditional or loop body, for the branch-join LUB in §4.F.
type assignmentTracker map[any][]*types.Type

func (c *Checker) pushAssignmentTracker() assignmentTracker {
	saved := c.assignmentTrackerFrame
	c.assignmentTrackerFrame = assignmentTracker{}
	return saved
}

func (c *Checker) popAssignmentTracker(saved assignmentTracker) assignmentTracker {
	finished := c.assignmentTrackerFrame
	c.assignmentTrackerFrame = saved
	return finished
}

func (c *Checker) trackAssignment(key any, t *types.Type) {
	if c.assignmentTrackerFrame == nil {
		return
	}
	c.assignmentTrackerFrame[key] = append(c.assignmentTrackerFrame[key], t)
	if _, ok := c.closureSharedVariables[key]; ok {
		c.closureSharedVariablesAssignmentTypes[key] = append(c.closureSharedVariablesAssignmentTypes[key], t)
	}
}

// joinTracked computes LUB(all recorded types) for every variable
// touched inside the just-closed tracker frame and returns the result,
// so the caller can write it back onto each variable's declaration
// metadata (§4.F "Branch-join via assignment tracker").
func (c *Checker) joinTracked(frame assignmentTracker) map[any]*types.Type {
	joined := map[any]*types.Type{}
	for key, ts := range frame {
		joined[key] = types.LUB(c.objectType, ts...)
	}
	return joined
}

// deferredCall is one entry of secondPassExpressions (§3, §4.G "Second
// pass"): a call site whose receiver referenced a closure-shared
// variable, deferred until every assignment to that variable across the
// whole method has been observed.
type deferredCall struct {
	call            *methodCallSite
	sharedVariable  any
	receiverAtCall  *types.Type
	formalArgTypes  []*types.Type
}
