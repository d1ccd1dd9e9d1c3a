// Copyright 2018 PingCAP, Inc.
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

package sessionctx

import (
	"fmt"
	"maps"

	"github.com/google/uuid"
	"github.com/pingcap/planrule/pkg/sessionctx/variable"
	"github.com/pingcap/planrule/pkg/util/intest"
)

// Identity is the user a session runs as.
type Identity struct {
	Username string
}

// String implements fmt.Stringer interface.
func (id Identity) String() string {
	return id.Username
}

// Session is the immutable configuration a rule consults. Use a Builder to
// derive a session with different settings.
type Session struct {
	queryID    uuid.UUID
	identity   Identity
	catalog    string
	schema     string
	properties map[string]string
	txnID      uuid.UUID
}

// QueryID returns the id of the query the session runs.
func (s *Session) QueryID() uuid.UUID {
	return s.queryID
}

// Identity returns the user of the session.
func (s *Session) Identity() Identity {
	return s.identity
}

// Catalog returns the default catalog.
func (s *Session) Catalog() string {
	return s.catalog
}

// Schema returns the default schema.
func (s *Session) Schema() string {
	return s.schema
}

// TransactionID returns the transaction the session is bound to.
func (s *Session) TransactionID() (uuid.UUID, bool) {
	return s.txnID, s.txnID != uuid.Nil
}

// SystemProperties returns a copy of the explicitly set system properties.
func (s *Session) SystemProperties() map[string]string {
	return maps.Clone(s.properties)
}

// GetSystemProperty returns the value of a system property, or its default
// when the session does not override it.
func (s *Session) GetSystemProperty(name string) (string, bool) {
	if val, ok := s.properties[name]; ok {
		return val, true
	}
	sv := variable.GetSysVar(name)
	if sv == nil {
		return "", false
	}
	return sv.Value, true
}

func (s *Session) mustGetSystemProperty(name string) string {
	val, ok := s.GetSystemProperty(name)
	intest.Assert(ok, "unknown system property %s", name)
	return val
}

// GetBoolProperty returns a boolean system property.
func (s *Session) GetBoolProperty(name string) bool {
	return variable.TiDBOptOn(s.mustGetSystemProperty(name))
}

// GetFloatProperty returns a float system property.
func (s *Session) GetFloatProperty(name string) float64 {
	val := s.mustGetSystemProperty(name)
	var def float64
	if sv := variable.GetSysVar(name); sv != nil {
		def = variable.TiDBOptFloat64(sv.Value, 0)
	}
	return variable.TiDBOptFloat64(val, def)
}

// GetStringProperty returns a string system property.
func (s *Session) GetStringProperty(name string) string {
	return s.mustGetSystemProperty(name)
}

// String implements fmt.Stringer interface.
func (s *Session) String() string {
	return fmt.Sprintf("Session{query: %s, user: %s, catalog: %s, schema: %s}", s.queryID, s.identity, s.catalog, s.schema)
}

// Builder derives a new Session. Errors are reported by Build.
type Builder struct {
	sess Session
	err  error
}

// NewBuilder creates a Builder starting from base. A nil base starts from an
// empty session with a fresh query id.
func NewBuilder(base *Session) *Builder {
	b := &Builder{}
	if base != nil {
		b.sess = *base
	} else {
		b.sess.queryID = uuid.New()
	}
	b.sess.properties = maps.Clone(b.sess.properties)
	if b.sess.properties == nil {
		b.sess.properties = make(map[string]string)
	}
	return b
}

// SetIdentity sets the user of the session.
func (b *Builder) SetIdentity(identity Identity) *Builder {
	b.sess.identity = identity
	return b
}

// SetCatalog sets the default catalog.
func (b *Builder) SetCatalog(catalog string) *Builder {
	b.sess.catalog = catalog
	return b
}

// SetSchema sets the default schema.
func (b *Builder) SetSchema(schema string) *Builder {
	b.sess.schema = schema
	return b
}

// SetTransactionID binds the session to a transaction.
func (b *Builder) SetTransactionID(txnID uuid.UUID) *Builder {
	b.sess.txnID = txnID
	return b
}

// SetSystemProperty validates and sets a system property.
func (b *Builder) SetSystemProperty(name, value string) *Builder {
	if b.err != nil {
		return b
	}
	normalized, err := variable.ValidateSysVar(name, value)
	if err != nil {
		b.err = err
		return b
	}
	b.sess.properties[variable.GetSysVar(name).Name] = normalized
	return b
}

// Build returns the new Session.
func (b *Builder) Build() (*Session, error) {
	if b.err != nil {
		return nil, b.err
	}
	sess := b.sess
	sess.properties = maps.Clone(b.sess.properties)
	return &sess, nil
}
