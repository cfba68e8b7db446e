// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"fillmore-labs.com/patternguard/bugcheck"
)

// SARIF 2.1.0 schema types
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html

const (
	sarifSchema  = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool              `json:"tool"`
	AutomationDetails sarifAutomationDetails `json:"automationDetails"`
	Results           []sarifResult          `json:"results"`
}

type sarifAutomationDetails struct {
	GUID string `json:"guid"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID                   string                  `json:"id"`
	ShortDescription     *sarifMessage           `json:"shortDescription,omitempty"`
	DefaultConfiguration *sarifRuleConfiguration `json:"defaultConfiguration,omitempty"`
	HelpURI              string                  `json:"helpUri,omitempty"`
	Properties           map[string]any          `json:"properties,omitempty"`
}

type sarifRuleConfiguration struct {
	Level string `json:"level,omitempty"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        *int            `json:"ruleIndex,omitempty"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations,omitempty"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
	Fixes            []sarifFix      `json:"fixes,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
	Message          *sarifMessage         `json:"message,omitempty"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int  `json:"startLine,omitempty"`
	StartColumn int  `json:"startColumn,omitempty"`
	EndLine     int  `json:"endLine,omitempty"`
	EndColumn   int  `json:"endColumn,omitempty"`
	ByteOffset  *int `json:"byteOffset,omitempty"`
	ByteLength  *int `json:"byteLength,omitempty"`
}

type sarifFix struct {
	Description     *sarifMessage         `json:"description,omitempty"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Replacements     []sarifReplacement    `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion   `json:"deletedRegion"`
	InsertedContent *sarifContent `json:"insertedContent,omitempty"`
}

type sarifContent struct {
	Text string `json:"text"`
}

type sarifReporter struct{ tool Tool }

func (r sarifReporter) Report(w io.Writer, ds []Diagnostic) error {
	rules, index := r.rules()

	results := make([]sarifResult, 0, len(ds))
	for _, d := range ds {
		results = append(results, sarifResultOf(d, index))
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           r.tool.Name,
				Version:        r.tool.Version,
				InformationURI: r.tool.URI,
				Rules:          rules,
			}},
			AutomationDetails: sarifAutomationDetails{GUID: uuid.NewString()},
			Results:           results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(log)
}

func (r sarifReporter) rules() ([]sarifRule, map[string]int) {
	rules := make([]sarifRule, 0, len(r.tool.Rules))
	index := make(map[string]int, len(r.tool.Rules))

	for _, rule := range r.tool.Rules {
		sr := sarifRule{ID: rule.Name, HelpURI: rule.URL}
		if rule.Summary != "" {
			sr.ShortDescription = &sarifMessage{Text: rule.Summary}
		}

		if rule.Severity != "" {
			var s bugcheck.Severity
			if err := s.UnmarshalText([]byte(rule.Severity)); err == nil {
				sr.DefaultConfiguration = &sarifRuleConfiguration{Level: sarifLevel(s)}
			}
		}

		if len(rule.Tags) > 0 {
			sr.Properties = map[string]any{"tags": rule.Tags}
		}

		index[rule.Name] = len(rules)
		rules = append(rules, sr)
	}

	return rules, index
}

func sarifResultOf(d Diagnostic, index map[string]int) sarifResult {
	res := sarifResult{
		RuleID:  d.Checker,
		Level:   sarifLevel(d.Severity),
		Message: sarifMessage{Text: d.Message},
		Locations: []sarifLocation{{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{URI: filepath.ToSlash(d.File)},
				Region: &sarifRegion{
					StartLine:   d.Line,
					StartColumn: d.Column,
					EndLine:     d.EndLine,
					EndColumn:   d.EndColumn,
				},
			},
		}},
	}

	if i, ok := index[d.Checker]; ok {
		res.RuleIndex = &i
	}

	for _, rel := range d.Related {
		res.RelatedLocations = append(res.RelatedLocations, sarifLocation{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{URI: filepath.ToSlash(rel.File)},
				Region:           &sarifRegion{StartLine: rel.Line, StartColumn: rel.Column},
			},
			Message: &sarifMessage{Text: rel.Message},
		})
	}

	for _, f := range d.Fixes {
		if len(f.Edits) == 0 {
			continue
		}

		change := sarifArtifactChange{ArtifactLocation: sarifArtifactLocation{URI: filepath.ToSlash(d.File)}}

		for _, e := range f.Edits {
			offset, length := e.Start, e.End-e.Start
			rep := sarifReplacement{DeletedRegion: sarifRegion{ByteOffset: &offset, ByteLength: &length}}

			if e.NewText != "" {
				rep.InsertedContent = &sarifContent{Text: e.NewText}
			}

			change.Replacements = append(change.Replacements, rep)
		}

		sf := sarifFix{ArtifactChanges: []sarifArtifactChange{change}}
		if f.Description != "" {
			sf.Description = &sarifMessage{Text: f.Description}
		}

		res.Fixes = append(res.Fixes, sf)
	}

	return res
}

func sarifLevel(s bugcheck.Severity) string {
	switch s {
	case bugcheck.Error:
		return "error"

	case bugcheck.Warning:
		return "warning"

	default:
		return "note"
	}
}
