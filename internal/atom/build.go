package atom

import "github.com/ritamzico/atomgraph/internal/atomhash"

// NodeDescriptor is caller input for a node: (named_type, name,
// custom_attributes).
type NodeDescriptor struct {
	NamedType        string
	Name             string
	CustomAttributes map[string]CustomAttributeValue
}

// LinkDescriptor is caller input for a link: (named_type, ordered target
// descriptors, custom_attributes). Each target is itself a NodeDescriptor or
// a nested LinkDescriptor.
type LinkDescriptor struct {
	NamedType        string
	Targets          []TargetDescriptor
	CustomAttributes map[string]CustomAttributeValue
}

// TargetDescriptor is either a NodeDescriptor or a LinkDescriptor; exactly
// one of Node/Link is non-nil.
type TargetDescriptor struct {
	Node *NodeDescriptor
	Link *LinkDescriptor
}

// BuildNode validates a NodeDescriptor and computes its handle fields. It
// performs no store interaction: node construction never recurses.
func BuildNode(d NodeDescriptor) (Node, error) {
	if d.NamedType == "" {
		return Node{}, errEmptyNamedType()
	}
	if d.Name == "" {
		return Node{}, errEmptyName()
	}
	for _, v := range d.CustomAttributes {
		if v.Kind < AttrString || v.Kind > AttrBool {
			return Node{}, ErrInvalidAtom{Kind: "InvalidAttributeType", Message: "unrecognized custom attribute kind"}
		}
	}

	handle, err := atomhash.TerminalHash(d.NamedType, d.Name)
	if err != nil {
		return Node{}, err
	}
	compositeTypeHash := atomhash.NamedTypeHash(d.NamedType)

	return Node{
		Header: Header{
			ID:                handle,
			Handle:            handle,
			CompositeTypeHash: compositeTypeHash,
			NamedType:         d.NamedType,
			CustomAttributes:  cloneAttributes(d.CustomAttributes),
		},
		Name: d.Name,
	}, nil
}

// TargetResult is the already-realized form of one link target: its handle
// and the composite-type contribution it makes to the parent link, as
// produced by recursively adding the target (a node or a nested link) to
// the store. AssembleLink never computes this itself — the store owns the
// recursion described in spec §4.2 because realizing a nested link target
// means inserting it.
type TargetResult struct {
	Handle            Handle
	CompositeTypeHash Handle
	CompositeType     CompositeType
}

// AssembleLink validates a link descriptor's shape and computes a Link's
// handle fields from its already-realized targets. IsToplevel is left at its
// zero value; the caller sets it.
func AssembleLink(namedType string, targets []TargetResult, customAttrs map[string]CustomAttributeValue) (Link, error) {
	if namedType == "" {
		return Link{}, errEmptyNamedType()
	}
	if len(targets) == 0 {
		return Link{}, errEmptyTargets()
	}
	for _, v := range customAttrs {
		if v.Kind < AttrString || v.Kind > AttrBool {
			return Link{}, ErrInvalidAtom{Kind: "InvalidAttributeType", Message: "unrecognized custom attribute kind"}
		}
	}

	linkTypeHash := atomhash.NamedTypeHash(namedType)

	compositeTypeList := make([]CompositeType, 0, len(targets)+1)
	compositeTypeList = append(compositeTypeList, Leaf(linkTypeHash))

	compositeTypeElements := make([]Handle, 0, len(targets)+1)
	compositeTypeElements = append(compositeTypeElements, linkTypeHash)

	targetHandles := make([]Handle, 0, len(targets))

	for _, t := range targets {
		compositeTypeList = append(compositeTypeList, t.CompositeType)
		compositeTypeElements = append(compositeTypeElements, t.CompositeTypeHash)
		targetHandles = append(targetHandles, t.Handle)
	}

	handle := atomhash.ExpressionHash(linkTypeHash, targetHandles)
	compositeTypeHash := atomhash.CompositeHash(compositeTypeElements)

	return Link{
		Header: Header{
			ID:                handle,
			Handle:            handle,
			CompositeTypeHash: compositeTypeHash,
			NamedType:         namedType,
			CustomAttributes:  cloneAttributes(customAttrs),
		},
		CompositeType: Branch(compositeTypeList),
		NamedTypeHash: linkTypeHash,
		Targets:       targetHandles,
	}, nil
}
