/*
 * golox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"devt.de/krotik/common/stringutil"
)

// AST Nodes
// =========

/*
nodeIDCounter is the monotonic node id source. Ids are unique within a
process and are the keys the resolver uses to record scope distances
(parser.ASTNode.Id -> int), since the resolver and the evaluator are
separate passes over the same tree.
*/
var nodeIDCounter uint64

/*
ASTNode models a node in the AST.
*/
type ASTNode struct {
	Id       uint64     // Unique node id, assigned when the node is instantiated
	Name     string     // Name of the node
	Token    *LexToken  // Lexer token of this ASTNode
	Children []*ASTNode // Child nodes
	Runtime  Runtime    // Runtime component for this ASTNode

	binding        int                                                             // Binding power of this node
	nullDenotation func(p *parser, self *ASTNode) (*ASTNode, error)                // Configure token as beginning node
	leftDenotation func(p *parser, self *ASTNode, left *ASTNode) (*ASTNode, error) // Configure token as left node
}

/*
instance creates a new instance of this ASTNode which is connected to a
concrete lexer token and has a fresh node id.
*/
func (n *ASTNode) instance(p *parser, t *LexToken) *ASTNode {

	ret := &ASTNode{
		atomic.AddUint64(&nodeIDCounter, 1),
		n.Name, t, make([]*ASTNode, 0, 2), nil,
		n.binding, n.nullDenotation, n.leftDenotation,
	}

	if p.rp != nil {
		ret.Runtime = p.rp.Runtime(ret)
	}

	return ret
}

/*
AttachRuntime decorates node and every descendant with a runtime component
from rp. Used when the runtime provider itself depends on information only
available after a full pass over the freshly parsed tree - the resolver's
scope-distance table, keyed by node id - so runtime components cannot be
attached during parsing the way ParseWithRuntime does it.
*/
func AttachRuntime(node *ASTNode, rp RuntimeProvider) {
	node.Runtime = rp.Runtime(node)
	for _, child := range node.Children {
		AttachRuntime(child, rp)
	}
}

/*
Equals checks if this AST data equals another AST data. Returns also a
message describing what is the found difference.
*/
func (n *ASTNode) Equals(other *ASTNode, ignoreTokenPosition bool) (bool, string) {
	return n.equalsPath(n.Name, other, ignoreTokenPosition)
}

func (n *ASTNode) equalsPath(path string, other *ASTNode, ignoreTokenPosition bool) (bool, string) {
	var res = true
	var msg string

	if n.Name != other.Name {
		res = false
		msg = fmt.Sprintf("Name is different %v vs %v\n", n.Name, other.Name)
	}

	if n.Token != nil && other.Token != nil {
		if ok, tokenMSG := n.Token.Equals(*other.Token, ignoreTokenPosition); !ok {
			res = false
			msg += fmt.Sprintf("Token is different:\n%v\n", tokenMSG)
		}
	}

	if len(n.Children) != len(other.Children) {
		res = false
		msg = fmt.Sprintf("Number of children is different %v vs %v\n",
			len(n.Children), len(other.Children))
	} else {
		for i, child := range n.Children {
			if ok, childMSG := child.equalsPath(fmt.Sprintf("%v > %v", path, child.Name),
				other.Children[i], ignoreTokenPosition); !ok {
				return ok, childMSG
			}
		}
	}

	if msg != "" {
		var buf bytes.Buffer
		buf.WriteString("AST Nodes:\n")
		n.levelString(0, &buf)
		buf.WriteString("vs\n")
		other.levelString(0, &buf)
		msg = fmt.Sprintf("Path to difference: %v\n\n%v\n%v", path, msg, buf.String())
	}

	return res, msg
}

/*
String returns a string representation of this node and its children.
*/
func (n *ASTNode) String() string {
	var buf bytes.Buffer
	n.levelString(0, &buf)
	return buf.String()
}

func (n *ASTNode) levelString(indent int, buf *bytes.Buffer) {
	buf.WriteString(stringutil.GenerateRollingString(" ", indent*2))

	switch n.Name {
	case NodeSTRING, NodeNUMBER, NodeIDENTIFIER:
		buf.WriteString(fmt.Sprintf("%v: %v", n.Name, n.Token.Val))
	default:
		buf.WriteString(n.Name)
	}

	buf.WriteString("\n")

	for _, child := range n.Children {
		child.levelString(indent+1, buf)
	}
}
