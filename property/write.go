/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/


package property

import (
	"go.uber.org/zap"

	"dirpx.dev/propx/apis"
)

// Set runs the write protocol of p: v is validated and stored in h's slot
// as an explicit write, bypassing default resolution, combination and
// transform. Subsequent reads return v until it is overwritten or unset.
func (p *Property) Set(h apis.Host, v any) error {
	if h == nil {
		return ErrNilHost
	}
	cls, err := p.check(h)
	if err != nil {
		return err
	}
	if err := p.validate(h, v); err != nil {
		return err
	}
	h.Store(p.name, apis.Slot{Value: v, Explicit: true})

	if l := cls.Logger(); l != nil {
		l.Debug("property written",
			zap.String("class", cls.Name()),
			zap.String("property", p.name),
		)
	}
	return nil
}
