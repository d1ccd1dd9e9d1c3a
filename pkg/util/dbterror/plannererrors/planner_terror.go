// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plannererrors

import (
	"github.com/pingcap/errors"
)

// Usage errors. They signal a misuse of the harness API and are raised with panic.
var (
	ErrPlanAlreadyBound        = errors.Normalize("plan has already been set", errors.RFCCodeText("Planner:RuleTest:PlanAlreadyBound"))
	ErrPlanNotBound            = errors.Normalize("plan has not been set, call On first", errors.RFCCodeText("Planner:RuleTest:PlanNotBound"))
	ErrUnknownSystemProperty   = errors.Normalize("unknown system property '%s'", errors.RFCCodeText("Planner:Session:UnknownSystemProperty"))
	ErrWrongValueForProperty   = errors.Normalize("system property '%s' can't be set to the value of '%s'", errors.RFCCodeText("Planner:Session:WrongValueForProperty"))
	ErrDuplicateSystemProperty = errors.Normalize("system property '%s' is already registered", errors.RFCCodeText("Planner:Session:DuplicateSystemProperty"))
	ErrUnknownRule             = errors.Normalize("unknown rule '%s'", errors.RFCCodeText("Planner:RuleTest:UnknownRule"))
)

// Assertion failures. They describe a rule that did not behave as the test expected.
var (
	ErrRuleFired            = errors.Normalize("Expected %s to not fire for:\n%s", errors.RFCCodeText("Planner:RuleTest:RuleFired"))
	ErrRuleDidNotFire       = errors.Normalize("%s did not fire for:\n%s", errors.RFCCodeText("Planner:RuleTest:RuleDidNotFire"))
	ErrRuleReturnedOriginal = errors.Normalize("%s: rule fired but return the original plan:\n%s", errors.RFCCodeText("Planner:RuleTest:RuleReturnedOriginal"))
	ErrOutputSchemaMismatch = errors.Normalize("%s: output schema of transformed and original plans are not equivalent\n\texpected: %s\n\tactual:   %s\n%s", errors.RFCCodeText("Planner:RuleTest:OutputSchemaMismatch"))
	ErrPlanMismatch         = errors.Normalize("Plan does not match, expected [\n\n%s\n] but found [\n\n%s\n]", errors.RFCCodeText("Planner:RuleTest:PlanMismatch"))
	ErrMultipleRootMatches  = errors.Normalize("%s: pattern matched the root %d times, expected at most one match", errors.RFCCodeText("Planner:RuleTest:MultipleRootMatches"))
)

// Internal errors.
var (
	ErrNoTransformedPlan    = errors.Normalize("%s did not produce transformed plan", errors.RFCCodeText("Planner:RuleTest:NoTransformedPlan"))
	ErrUnknownGroup         = errors.Normalize("group %d does not exist in memo", errors.RFCCodeText("Planner:Memo:UnknownGroup"))
	ErrGroupReferenceNoMemo = errors.Normalize("%s without memo cannot handle group references", errors.RFCCodeText("Planner:Memo:GroupReferenceWithoutMemo"))
	ErrAmbiguousResolution  = errors.Normalize("group reference %s resolved to %d nodes, expected exactly one", errors.RFCCodeText("Planner:Memo:AmbiguousResolution"))
	ErrUnknownCatalog       = errors.Normalize("catalog '%s' does not exist", errors.RFCCodeText("Planner:Metadata:UnknownCatalog"))
	ErrUnknownTable         = errors.Normalize("table '%s.%s' does not exist", errors.RFCCodeText("Planner:Metadata:UnknownTable"))
	ErrCatalogAccessDenied  = errors.Normalize("access denied: user '%s' cannot access catalog '%s'", errors.RFCCodeText("Planner:Privilege:CatalogAccessDenied"))
	ErrTxnNotFound          = errors.Normalize("transaction %s does not exist", errors.RFCCodeText("Planner:Txn:NotFound"))
	ErrTxnNotBound          = errors.Normalize("session %s is not bound to a transaction", errors.RFCCodeText("Planner:Txn:NotBound"))
	ErrUnsupportedPlanNode  = errors.Normalize("unsupported plan node %T", errors.RFCCodeText("Planner:Stats:UnsupportedPlanNode"))
)

// Warnings. They are collected by the rule context instead of being returned.
var (
	ErrJoinFlipStatsUnknown = errors.Normalize("join %s is not flipped, statistics of its inputs are unknown", errors.RFCCodeText("Planner:Rule:JoinFlipStatsUnknown"))
)
