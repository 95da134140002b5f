package geometry

import (
	"regexp"
	"strconv"
	"strings"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

var (
	tokenRe   = regexp.MustCompile(`-?[0-9]*\.?[0-9]+(?:[eE][-+]?\d+)?|[MLHVCSQTAZmlhvcsqtaz]`)
	commandRe = regexp.MustCompile(`^[MLHVCSQTAZmlhvcsqtaz]$`)
)

// CubicSamples 三次贝塞尔段的固定采样参数
var CubicSamples = [4]float64{0.25, 0.5, 0.75, 1.0}

// Command 一条路径命令及其参数（一组）
type Command struct {
	Op   byte
	Args []float64
}

// Absolute 是否绝对坐标命令
func (c Command) Absolute() bool {
	return c.Op >= 'A' && c.Op <= 'Z'
}

// getGroupSize 每种命令一组参数的个数
func getGroupSize(cmd byte) int {
	switch cmd {
	case 'H', 'h', 'V', 'v':
		return 1
	case 'M', 'm', 'L', 'l', 'T', 't':
		return 2
	case 'S', 's', 'Q', 'q':
		return 4
	case 'C', 'c':
		return 6
	case 'A', 'a':
		return 7
	default:
		return 0
	}
}

// ParseCommands 把 d 属性切成命令组。同一命令后跟多组参数时拆成多条；
// M/m 之后的隐式参数组按 L/l 处理。
func ParseCommands(d string) []Command {
	tokens := tokenRe.FindAllString(d, -1)

	var out []Command
	var command byte
	var params []float64

	flush := func() {
		size := getGroupSize(command)
		if size == 0 {
			params = nil
			return
		}
		op := command
		for i := 0; i+size <= len(params); i += size {
			out = append(out, Command{Op: op, Args: append([]float64(nil), params[i:i+size]...)})
			switch op {
			case 'M':
				op = 'L'
			case 'm':
				op = 'l'
			}
		}
		params = nil
	}

	for _, t := range tokens {
		if commandRe.MatchString(t) {
			if len(params) > 0 {
				flush()
			}
			command = t[0]
			if command == 'Z' || command == 'z' {
				out = append(out, Command{Op: command})
			}
			continue
		}
		num, err := strconv.ParseFloat(t, 64)
		if err != nil {
			continue
		}
		params = append(params, num)
	}
	if len(params) > 0 {
		flush()
	}
	return out
}

// FlipY 以 height 为基准翻转所有 y 坐标。绝对坐标取 height-y，相对坐标取反。
func FlipY(d string, height float64) string {
	cmds := ParseCommands(d)
	var b strings.Builder
	for i, c := range cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c.Op)
		args := flipGroup(c, height)
		for _, v := range args {
			b.WriteByte(' ')
			b.WriteString(formatNumber(v))
		}
	}
	return b.String()
}

func flipGroup(c Command, height float64) []float64 {
	abs := c.Absolute()
	res := append([]float64(nil), c.Args...)
	switch c.Op {
	case 'H', 'h':
		return res
	case 'V':
		res[0] = height - res[0]
	case 'v':
		res[0] = -res[0]
	case 'A':
		res[6] = height - res[6]
		res[4] = 1 - res[4]
	case 'a':
		res[6] = -res[6]
		res[4] = 1 - res[4]
	default:
		for i := 1; i < len(res); i += 2 {
			if abs {
				res[i] = height - res[i]
			} else {
				res[i] = -res[i]
			}
		}
	}
	return res
}

// ExtractSubpaths 把路径命令串展开为若干子路径的点序列。
// 三次曲线在 t=0.25,0.5,0.75,1 处采样，二次曲线同样处理；弧线只取终点。
func ExtractSubpaths(d string) [][]i2stypes.Point {
	var subpaths [][]i2stypes.Point
	var cur []i2stypes.Point
	var pos, start, lastCtrl i2stypes.Point
	var prevOp byte

	closeCurrent := func() {
		if len(cur) > 0 {
			subpaths = append(subpaths, cur)
		}
		cur = nil
	}

	for _, c := range ParseCommands(d) {
		a := c.Args
		rel := !c.Absolute()
		off := func(x, y float64) i2stypes.Point {
			if rel {
				return i2stypes.Point{X: pos.X + x, Y: pos.Y + y}
			}
			return i2stypes.Point{X: x, Y: y}
		}

		switch c.Op {
		case 'M', 'm':
			closeCurrent()
			pos = off(a[0], a[1])
			start = pos
			cur = append(cur, pos)
		case 'L', 'l', 'T', 't':
			pos = off(a[0], a[1])
			cur = append(cur, pos)
		case 'H':
			pos = i2stypes.Point{X: a[0], Y: pos.Y}
			cur = append(cur, pos)
		case 'h':
			pos = i2stypes.Point{X: pos.X + a[0], Y: pos.Y}
			cur = append(cur, pos)
		case 'V':
			pos = i2stypes.Point{X: pos.X, Y: a[0]}
			cur = append(cur, pos)
		case 'v':
			pos = i2stypes.Point{X: pos.X, Y: pos.Y + a[0]}
			cur = append(cur, pos)
		case 'C', 'c':
			c1, c2, end := off(a[0], a[1]), off(a[2], a[3]), off(a[4], a[5])
			cur = append(cur, sampleCubic(pos, c1, c2, end)...)
			lastCtrl, pos = c2, end
		case 'S', 's':
			c1 := pos
			if prevOp == 'C' || prevOp == 'c' || prevOp == 'S' || prevOp == 's' {
				c1 = i2stypes.Point{X: 2*pos.X - lastCtrl.X, Y: 2*pos.Y - lastCtrl.Y}
			}
			c2, end := off(a[0], a[1]), off(a[2], a[3])
			cur = append(cur, sampleCubic(pos, c1, c2, end)...)
			lastCtrl, pos = c2, end
		case 'Q', 'q':
			q, end := off(a[0], a[1]), off(a[2], a[3])
			c1 := i2stypes.Point{X: pos.X + 2.0/3*(q.X-pos.X), Y: pos.Y + 2.0/3*(q.Y-pos.Y)}
			c2 := i2stypes.Point{X: end.X + 2.0/3*(q.X-end.X), Y: end.Y + 2.0/3*(q.Y-end.Y)}
			cur = append(cur, sampleCubic(pos, c1, c2, end)...)
			pos = end
		case 'A', 'a':
			pos = off(a[5], a[6])
			cur = append(cur, pos)
		case 'Z', 'z':
			closeCurrent()
			pos = start
		}
		prevOp = c.Op
	}
	closeCurrent()
	return subpaths
}

// ExtractPoints 所有子路径的点拼成一个序列
func ExtractPoints(d string) []i2stypes.Point {
	var out []i2stypes.Point
	for _, sp := range ExtractSubpaths(d) {
		out = append(out, sp...)
	}
	return out
}

func sampleCubic(p0, p1, p2, p3 i2stypes.Point) []i2stypes.Point {
	out := make([]i2stypes.Point, 0, len(CubicSamples))
	for _, t := range CubicSamples {
		mt := 1 - t
		a := mt * mt * mt
		b := 3 * mt * mt * t
		c := 3 * mt * t * t
		d := t * t * t
		out = append(out, i2stypes.Point{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		})
	}
	return out
}

// formatNumber 最多两位小数，去掉多余的 0
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
