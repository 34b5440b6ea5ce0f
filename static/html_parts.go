// Package static хранит куски HTML-страницы, между которыми
// сервер вставляет график, SVG и логи.
package static

var (
	Part1 = `
    <!DOCTYPE html>
    <html>
    <head>
        <title>Диаграмма Вороного</title>
		<style>
			body {
				background-color: #1F1F1F; /* Темный фон для всей страницы */
				color: #d3d3d3; /* Светло-серый текст */
				font-family: Consolas, monospace;
				overflow-y: auto;
			}

			#container {
				display: flex;
				width: 100%;
				height: 100vh;
				box-sizing: border-box;
			}

			#left-container {
				width: 50%;
				padding: 10px;
				overflow-y: auto;
				box-sizing: border-box;
			}

			#right-container {
				width: 50%;
				padding: 10px;
				box-sizing: border-box;
				border-left: 5px solid #757575; /* Темная граница для правого контейнера */
				overflow-y: auto; /* Вертикальная прокрутка для логов */
				overflow-x: auto; /* Вертикальная прокрутка для логов */
				background-color: #1e1e1e; /* Темный фон для контейнера логов */
			}

			#logs {
				white-space: pre-wrap; /* Сохраняем пробелы и переносим строки */
				word-wrap: break-word; /* Перенос длинных слов */
				color: #d3d3d3; /* Цвет текста в логах - светло-серый */
				font-family: Consolas, monospace; /* Моноширинный шрифт для логов */
			}

			#chart-container {
				width: 100%;
			}

			#svg-container svg {
				max-width: 100%;
				height: auto;
				border: 1px solid #444;
			}

			input[type="number"],
			input[type="submit"],
			select {
				background-color: #2b2b2b; /* Темный фон для полей ввода */
				color: #d3d3d3; /* Светло-серый текст для полей */
				border: 1px solid #444; /* Темная граница */
				padding: 5px;
				margin: 5px 0;
				border-radius: 4px;
			}

			label {
				color: #d3d3d3; /* Светло-серый цвет для текста меток */
			}

			h1 {
				color: #d3d3d3; /* Цвет заголовка светло-серый */
			}

			input[type="submit"]:hover {
				background-color: #444; /* Немного светлее при наведении */
				cursor: pointer;
			}

			/* Добавление стилей для темной темы */
			::-webkit-scrollbar {
				width: 8px;
			}

			::-webkit-scrollbar-thumb {
				background-color: #444; /* Цвет ползунка */
				border-radius: 10px;
			}

			::-webkit-scrollbar-track {
				background-color: #2b2b2b; /* Цвет области прокрутки */
			}
        </style>
    </head>
    <body>
        <div id="container">
            <div id="left-container">
                <h1>Параметры для диаграммы Вороного</h1>
                <form id="diagram-form" method="POST">
                    <label for="width">Ширина (W):</label>
                    <input type="number" id="width" name="width" value="1000" min="100" max="5000"><br><br>
                    <label for="height">Высота (H):</label>
                    <input type="number" id="height" name="height" value="600" min="100" max="5000"><br><br>
                    <label for="stations">Количество точек (n):</label>
                    <input type="number" id="stations" name="stations" value="30" min="0" max="500"><br><br>
                    <label for="random">Случайные точки:</label>
                    <input type="checkbox" id="random" name="random" value="true" checked><br><br>
                    <label for="relax">Шаги релаксации Ллойда:</label>
                    <input type="number" id="relax" name="relax" value="0" min="0" max="200"><br><br>
                    <label for="mode">Заливка:</label>
                    <select id="mode" name="mode">
                        <option value="noise">noise</option>
                        <option value="distance">distance</option>
                        <option value="spiral">spiral</option>
                        <option value="cellId">cellId</option>
                        <option value="off">off</option>
                    </select><br><br>
                    <label for="hue">Оттенок:</label>
                    <input type="number" id="hue" name="hue" value="200" min="0" max="360"><br><br>
                    <input type="submit" value="Построить">
                </form>
                <div id="chart-container">
    `

	Part2 = `
                </div>
                <div id="svg-container">`

	Part3 = `
                </div>
            </div>
            <div id="right-container">
                <h1>Логи</h1>
                <div id="logs">`

	Part4 = `
                </div>
            </div>
        </div>

        <script>
            document.getElementById('diagram-form').addEventListener('submit', function (e) {
                e.preventDefault();
                const formData = new FormData(this);
                const params = new URLSearchParams(formData).toString();

                // Отправка данных формы
                fetch('/', {
                    method: 'POST',
                    body: params,
                    headers: {
                        'Content-Type': 'application/x-www-form-urlencoded'
                    }
                })
                .then(response => {
                    if (!response.ok) {
                        throw new Error('Ошибка при отправке данных');
                    }
                    return response.text(); // Получаем HTML-ответ с обновленной диаграммой и логами
                })
                .then(html => {
                    document.open(); // Очищаем текущую страницу
                    document.write(html); // Записываем обновленный HTML
                    document.close(); // Закрываем поток
                })
                .catch(error => {
                    console.error('Ошибка:', error);
                });
            });

            // Клик по SVG добавляет точку, движение мыши двигает указатель
            const svgBox = document.getElementById('svg-container');

            function svgPoint(e) {
                const svg = svgBox.querySelector('svg');
                const pt = svg.createSVGPoint();
                pt.x = e.clientX;
                pt.y = e.clientY;
                const p = pt.matrixTransform(svg.getScreenCTM().inverse());
                // пиксели холста в координаты прямоугольника
                const scale = parseFloat(svg.dataset.scale) || 1;
                return {
                    x: (parseFloat(svg.dataset.xl) || 0) + p.x / scale,
                    y: (parseFloat(svg.dataset.yt) || 0) + p.y / scale
                };
            }

            function refreshSVG() {
                fetch('/api/diagram.svg')
                    .then(response => response.text())
                    .then(text => { svgBox.innerHTML = text; });
            }

            svgBox.addEventListener('click', function (e) {
                const p = svgPoint(e);
                fetch('/api/sites', {
                    method: 'POST',
                    body: JSON.stringify({x: p.x, y: p.y}),
                    headers: {'Content-Type': 'application/json'}
                }).then(refreshSVG);
            });

            let pending = false;
            svgBox.addEventListener('mousemove', function (e) {
                if (pending) {
                    return;
                }
                pending = true;
                const p = svgPoint(e);
                fetch('/api/pointer', {
                    method: 'PUT',
                    body: JSON.stringify({x: p.x, y: p.y}),
                    headers: {'Content-Type': 'application/json'}
                }).then(refreshSVG).finally(() => { pending = false; });
            });
        </script>
    </body>
    </html>
    `
)
