package cgen

import (
	"fmt"
	"strings"

	"github.com/ticos/tmgen/internal/codegen/common"
	"github.com/ticos/tmgen/internal/codegen/thingmodel"
)

const indentUnit = "    "

// symbol is the resolved C surface of one capability.
type symbol struct {
	access Accessors
	name   string
	ctype  string
	zero   string
	tag    string
	getter string
	setter string
	enum   string
}

func newSymbol(it thingmodel.Item, access Accessors) (symbol, error) {
	ctype, err := common.CType(it.Schema)
	if err != nil {
		return symbol{}, err
	}
	zero, err := common.ZeroValue(it.Schema)
	if err != nil {
		return symbol{}, err
	}
	tag, err := common.ValueTag(it.Schema)
	if err != nil {
		return symbol{}, err
	}
	return symbol{
		access: access,
		name:   it.Name,
		ctype:  ctype,
		zero:   zero,
		tag:    tag,
		getter: common.GetterName(it.Kind, it.Name),
		setter: common.SetterName(it.Kind, it.Name),
		enum:   common.EnumName(it.Kind, it.Name),
	}, nil
}

func (s symbol) getterHead() string {
	return fmt.Sprintf("%s %s(void)", s.ctype, s.getter)
}

func (s symbol) setterHead() string {
	return fmt.Sprintf("int %s(%s %s)", s.setter, s.ctype, common.ParamName(s.name))
}

// declarations returns one prototype per generated accessor, getter first.
func (s symbol) declarations() []string {
	var out []string
	if s.access.Getter {
		out = append(out, s.getterHead()+";\n")
	}
	if s.access.Setter {
		out = append(out, s.setterHead()+";\n")
	}
	return out
}

// definitions returns compilable stubs; the bodies are left to the firmware author.
func (s symbol) definitions() []string {
	var out []string
	if s.access.Getter {
		out = append(out, block(s.getterHead(), "return "+s.zero+";"))
	}
	if s.access.Setter {
		out = append(out, block(s.setterHead(), "(void)"+common.ParamName(s.name)+";", "return 0;"))
	}
	return out
}

func (s symbol) tableRow() string {
	cols := []string{fmt.Sprintf("%q", s.name), s.tag}
	if s.access.Getter {
		cols = append(cols, s.getter)
	}
	if s.access.Setter {
		cols = append(cols, s.setter)
	}
	return indentUnit + "{ " + strings.Join(cols, ", ") + " },\n"
}

func enumLine(ident string) string {
	return indentUnit + ident + ",\n"
}

func block(head string, stmts ...string) string {
	var b strings.Builder
	b.WriteString(head)
	b.WriteString("\n{\n")
	for _, st := range stmts {
		b.WriteString(indentUnit)
		b.WriteString(st)
		b.WriteByte('\n')
	}
	b.WriteString("}\n\n")
	return b.String()
}
