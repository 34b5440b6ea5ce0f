// Package noise - детерминированный value noise на хеше и его фрактальная
// сумма (fBm). Функции чистые: одинаковый вход дает побитово одинаковый выход.
package noise

import "math"

// DefaultOctaves - число октав при заливке ячеек.
const DefaultOctaves = 4

const (
	// чуть больше 2, иначе видны артефакты вдоль осей
	lacunarity = 2.02
	gain       = 0.5
)

// Fract возвращает дробную часть x в [0, 1), в том числе для отрицательных x.
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Mix - линейная интерполяция между a и b.
func Mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func Clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// Smoothstep - кубическая ступенька Эрмита между a и b.
func Smoothstep(a, b, x float64) float64 {
	t := Clamp((x-a)/(b-a), 0, 1)
	return t * t * (3 - 2*t)
}

// Hash отображает (x, y) в псевдослучайное число из [0, 1).
func Hash(x, y float64) float64 {
	return Fract(math.Sin(x*127.1+y*311.7) * 43758.5453)
}

// Value - двумерный value noise: четыре хеша узлов решетки вокруг (x, y)
// смешиваются с кубическими весами 3u²-2u³.
func Value(x, y float64) float64 {
	xi, yi := math.Floor(x), math.Floor(y)
	xf, yf := x-xi, y-yi

	u := xf * xf * (3 - 2*xf)
	v := yf * yf * (3 - 2*yf)

	n00 := Hash(xi, yi)
	n10 := Hash(xi+1, yi)
	n01 := Hash(xi, yi+1)
	n11 := Hash(xi+1, yi+1)

	return Mix(Mix(n00, n10, u), Mix(n01, n11, u), v)
}

// FBM суммирует октавы Value. Частота растет в 2.02 раза, амплитуда падает
// вдвое, начиная с частоты 1 и амплитуды 0.5. Результат в [0, 1 - 0.5^octaves).
func FBM(x, y float64, octaves int) float64 {
	var sum float64
	amp, freq := 0.5, 1.0
	for i := 0; i < octaves; i++ {
		sum += amp * Value(x*freq, y*freq)
		freq *= lacunarity
		amp *= gain
	}
	return sum
}
