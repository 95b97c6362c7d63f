package dsl

import (
	"strings"

	"github.com/ritamzico/atomgraph/internal/atom"
	"github.com/ritamzico/atomgraph/internal/atomhash"
	"github.com/ritamzico/atomgraph/internal/query"
	"github.com/ritamzico/atomgraph/internal/store"
)

func unquote(s string) string {
	return strings.Trim(s, "\"")
}

func convertGrammar(ast *Grammar) (query.Query, error) {
	switch {
	case ast.Add != nil:
		return convertAdd(ast.Add)
	case ast.DeleteAtom != nil:
		return query.DeleteAtomQuery{Handle: atomhash.Handle(ast.DeleteAtom.Handle)}, nil
	case ast.Clear:
		return query.ClearQuery{}, nil
	case ast.Match != nil:
		return convertMatch(ast.Match)
	case ast.Get != nil:
		return convertGetAtom(ast.Get)
	case ast.Incoming != nil:
		return convertIncoming(ast.Incoming)
	case ast.NodeExists != nil:
		return query.NodeExistsQuery{Type: ast.NodeExists.Type, Name: unquote(ast.NodeExists.Name)}, nil
	case ast.LinkExists != nil:
		return query.LinkExistsQuery{Type: ast.LinkExists.Type, Targets: toHandles(ast.LinkExists.Targets)}, nil
	case ast.Count:
		return query.CountQuery{}, nil
	default:
		return nil, SyntaxError{Kind: "InvalidSyntax", Message: "empty input"}
	}
}

func convertAdd(ast *AddAST) (query.Query, error) {
	if ast.Node != nil {
		return query.AddNodeQuery{Descriptor: convertNodeDescriptor(ast.Node)}, nil
	}
	d, err := convertLinkDescriptor(ast.Link)
	if err != nil {
		return nil, err
	}
	return query.AddLinkQuery{Descriptor: d, IsToplevel: true}, nil
}

func convertNodeDescriptor(ast *AddNodeAST) atom.NodeDescriptor {
	return atom.NodeDescriptor{
		NamedType:        ast.Type,
		Name:             unquote(ast.Name),
		CustomAttributes: convertProps(ast.Props),
	}
}

func convertLinkDescriptor(ast *AddLinkAST) (atom.LinkDescriptor, error) {
	targets := make([]atom.TargetDescriptor, len(ast.Targets))
	for i, t := range ast.Targets {
		td, err := convertTarget(t)
		if err != nil {
			return atom.LinkDescriptor{}, err
		}
		targets[i] = td
	}
	return atom.LinkDescriptor{
		NamedType:        ast.Type,
		Targets:          targets,
		CustomAttributes: convertProps(ast.Props),
	}, nil
}

func convertTarget(ast *TargetAST) (atom.TargetDescriptor, error) {
	switch {
	case ast.Node != nil:
		d := convertNodeDescriptor(ast.Node)
		return atom.TargetDescriptor{Node: &d}, nil
	case ast.Link != nil:
		d, err := convertLinkDescriptor(ast.Link)
		if err != nil {
			return atom.TargetDescriptor{}, err
		}
		return atom.TargetDescriptor{Link: &d}, nil
	default:
		return atom.TargetDescriptor{}, SyntaxError{Kind: "InvalidSyntax", Message: "empty target"}
	}
}

func convertProps(props []*PropAST) map[string]atom.CustomAttributeValue {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]atom.CustomAttributeValue, len(props))
	for _, p := range props {
		switch {
		case p.Value.Str != nil:
			out[p.Key] = atom.StringAttr(unquote(*p.Value.Str))
		case p.Value.Float != nil:
			out[p.Key] = atom.FloatAttr(*p.Value.Float)
		case p.Value.Int != nil:
			out[p.Key] = atom.IntAttr(*p.Value.Int)
		case p.Value.True:
			out[p.Key] = atom.BoolAttr(true)
		case p.Value.False:
			out[p.Key] = atom.BoolAttr(false)
		}
	}
	return out
}

func convertMatch(ast *MatchAST) (query.Query, error) {
	switch {
	case ast.Link != nil:
		l := ast.Link
		targets := make([]string, len(l.Targets))
		for i, t := range l.Targets {
			if t.Wildcard {
				targets[i] = atomhash.Wildcard
			} else {
				targets[i] = t.Handle
			}
		}
		return query.MatchLinkQuery{Type: l.Type, Targets: targets, ToplevelOnly: l.ToplevelOnly}, nil
	case ast.Type != nil:
		return query.MatchTypeQuery{Type: ast.Type.Type, ToplevelOnly: ast.Type.ToplevelOnly}, nil
	case ast.Template != nil:
		return query.MatchTemplateQuery{Template: ast.Template.Template, ToplevelOnly: ast.Template.ToplevelOnly}, nil
	default:
		return nil, SyntaxError{Kind: "InvalidSyntax", Message: "empty match"}
	}
}

func convertGetAtom(ast *GetAtomAST) (query.Query, error) {
	return query.GetAtomQuery{
		Handle:  atomhash.Handle(ast.Handle),
		Options: convertOptions(ast.Options),
	}, nil
}

func convertIncoming(ast *IncomingAST) (query.Query, error) {
	return query.IncomingQuery{
		Handle:  atomhash.Handle(ast.Handle),
		Options: convertOptions(ast.Options),
	}, nil
}

func convertOptions(flags []string) store.GetAtomOptions {
	var opts store.GetAtomOptions
	for _, f := range flags {
		switch strings.ToUpper(f) {
		case "NOTARGETFORMAT":
			opts.NoTargetFormat = true
		case "TARGETSDOCUMENT":
			opts.TargetsDocument = true
		case "DEEP":
			opts.DeepRepresentation = true
		case "HANDLESONLY":
			opts.HandlesOnly = true
		}
	}
	return opts
}

func toHandles(ss []string) []atomhash.Handle {
	out := make([]atomhash.Handle, len(ss))
	for i, s := range ss {
		out[i] = atomhash.Handle(s)
	}
	return out
}
