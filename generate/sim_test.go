package generate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// machine interprets the subset of x86-64 the generator emits.  Memory is only
// ever addressed relative to rsp so the stack is modeled as a map of words.
type machine struct {
	regs   map[string]int64
	stack  map[int64]int64
	labels map[string]int
	insts  [][]string
}

const (
	stackTop = 1 << 20
	maxSteps = 100000
)

// runAsm executes the assembly text and returns the process exit status.
func runAsm(asm string) (int, error) {
	m := &machine{
		regs:   map[string]int64{"rsp": stackTop},
		stack:  make(map[int64]int64),
		labels: make(map[string]int),
	}

	for _, line := range strings.Split(asm, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case line == "", strings.HasPrefix(line, "global "):
			continue
		case strings.HasSuffix(line, ":"):
			m.labels[strings.TrimSuffix(line, ":")] = len(m.insts)
		default:
			op, rest, _ := strings.Cut(line, " ")

			inst := []string{op}
			if rest != "" {
				for _, operand := range strings.Split(rest, ",") {
					inst = append(inst, strings.TrimSpace(operand))
				}
			}

			m.insts = append(m.insts, inst)
		}
	}

	return m.run()
}

func (m *machine) run() (int, error) {
	pc, ok := m.labels["_start"]
	if !ok {
		return 0, errors.New("missing _start")
	}

	for steps := 0; steps < maxSteps; steps++ {
		if pc >= len(m.insts) {
			return 0, errors.New("ran off the end of the program")
		}

		inst := m.insts[pc]
		pc++

		switch inst[0] {
		case "mov":
			m.store(inst[1], m.load(inst[2]))
		case "push":
			v := m.load(inst[1])
			m.regs["rsp"] -= 8
			m.stack[m.regs["rsp"]] = v
		case "pop":
			m.regs[inst[1]] = m.stack[m.regs["rsp"]]
			m.regs["rsp"] += 8
		case "add":
			m.store(inst[1], m.load(inst[1])+m.load(inst[2]))
		case "sub":
			m.store(inst[1], m.load(inst[1])-m.load(inst[2]))
		case "imul":
			m.store(inst[1], m.load(inst[1])*m.load(inst[2]))
		case "cqo":
			if m.regs["rax"] < 0 {
				m.regs["rdx"] = -1
			} else {
				m.regs["rdx"] = 0
			}
		case "idiv":
			divisor := m.load(inst[1])
			if divisor == 0 {
				return 0, errors.New("division by zero")
			}

			dividend := m.regs["rax"]
			m.regs["rax"] = dividend / divisor
			m.regs["rdx"] = dividend % divisor
		case "test":
			m.regs["zf"] = 0
			if m.load(inst[1])&m.load(inst[2]) == 0 {
				m.regs["zf"] = 1
			}
		case "jz":
			if m.regs["zf"] == 1 {
				pc = m.labels[inst[1]]
			}
		case "jmp":
			pc = m.labels[inst[1]]
		case "syscall":
			if m.regs["rax"] != 60 {
				return 0, fmt.Errorf("unsupported syscall %d", m.regs["rax"])
			}

			return int(m.regs["rdi"] & 0xff), nil
		default:
			return 0, fmt.Errorf("unsupported instruction %q", inst[0])
		}
	}

	return 0, errors.New("step limit exceeded")
}

// load evaluates a source operand.
func (m *machine) load(operand string) int64 {
	if addr, ok := m.address(operand); ok {
		return m.stack[addr]
	}

	if v, err := strconv.ParseInt(operand, 10, 64); err == nil {
		return v
	}

	return m.regs[operand]
}

// store writes to a destination operand.
func (m *machine) store(operand string, v int64) {
	if addr, ok := m.address(operand); ok {
		m.stack[addr] = v
	} else {
		m.regs[operand] = v
	}
}

// address decodes a `QWORD [rsp + n]` memory operand.
func (m *machine) address(operand string) (int64, bool) {
	inner, ok := strings.CutPrefix(operand, "QWORD [rsp + ")
	if !ok {
		return 0, false
	}

	offset, err := strconv.ParseInt(strings.TrimSuffix(inner, "]"), 10, 64)
	if err != nil {
		panic(fmt.Sprintf("bad memory operand %q", operand))
	}

	return m.regs["rsp"] + offset, true
}
